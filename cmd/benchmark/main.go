package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/cellparty/cells"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

func main() {
	flag.Parse()

	f, err := os.Create("default.pgo")
	if err != nil {
		log.Fatal(err)
	}
	pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	log.Printf("warming up")

	benchmarkLiftChains(true)
	benchmarkTrackedReads(true)
}

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100, 1_000}
	iters = 100
)

type bench struct {
	cells.State
}

func addOne(v int) (int, error) {
	return v + 1, nil
}

func benchmarkLiftChains(shouldRender bool) {

	tbl := table.NewWriter()
	tbl.SetTitle("Lift Chains")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			g := &bench{}
			src := cells.NewValue(fmt.Sprintf("chain_%dx%d_src", w, h), func(*bench) int { return 1 })
			for i := 0; i < w; i++ {
				var last cells.Cell[*bench, int] = src
				var leaf *cells.Computed[*bench, int]
				for j := 0; j < h; j++ {
					prev := last
					leaf = cells.Lift1(fmt.Sprintf("chain_%dx%d_%d_%d", w, h, i, j), prev, addOne)
					last = leaf
				}

				leaf.Notifier(g).AddHandler(cells.NewHandler(func() error {
					_, err := leaf.Get(g)
					return err
				}))
				if _, err := leaf.Get(g); err != nil {
					log.Fatal(err)
				}
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				if err := src.Set(g, src.Get(g)+1); err != nil {
					log.Fatal(err)
				}
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

func benchmarkTrackedReads(shouldRender bool) {

	tbl := table.NewWriter()
	tbl.SetTitle("Tracked Reads")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		g := &bench{}
		srcs := make([]*cells.Value[*bench, int], w)
		for i := 0; i < w; i++ {
			srcs[i] = cells.NewValue(fmt.Sprintf("dyn_%d_src_%d", w, i), func(*bench) int { return 1 })
		}

		sum := cells.NewComputed(fmt.Sprintf("dyn_%d_sum", w), func(m *bench) (int, error) {
			total := 0
			for _, s := range srcs {
				total += s.Get(m)
			}
			return total, nil
		})
		sum.Notifier(g).AddHandler(cells.NewHandler(func() error {
			_, err := sum.Get(g)
			return err
		}))
		if _, err := sum.Get(g); err != nil {
			log.Fatal(err)
		}

		for i := 0; i < iters; i++ {
			src := srcs[i%w]
			start := time.Now()
			if err := src.Set(g, src.Get(g)+1); err != nil {
				log.Fatal(err)
			}
			tach.AddTime(time.Since(start))
		}

		calc := tach.Calc()
		tbl.AppendRows([]table.Row{
			{
				fmt.Sprintf("sum over %d sources", w),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
			},
		})
	}

	if shouldRender {
		tbl.Render()
	}
}
