package renderer

import (
	"sync"

	"github.com/df07/go-simd-raytracer/pkg/core"
	"github.com/df07/go-simd-raytracer/pkg/integrator"
)

// workerPool runs one rowWorker per stripe and joins them
type workerPool struct {
	workers []*rowWorker
	wg      sync.WaitGroup
}

// rowWorker renders every row of its stripe into a shared frame buffer.
// Stripes never overlap, so workers write disjoint byte ranges.
type rowWorker struct {
	ID       int
	rows     []int
	renderer *Renderer
	clusters []core.RayCluster
	colors   []core.Vec3
	stats    workerStats
}

type workerStats struct {
	rayClusters int
	bounces     int
}

func newWorkerPool(r *Renderer, stripes [][]int) *workerPool {
	wp := &workerPool{}
	for i, rows := range stripes {
		wp.workers = append(wp.workers, &rowWorker{
			ID:       i,
			rows:     rows,
			renderer: r,
			clusters: make([]core.RayCluster, r.config.SampleGroups),
			colors:   make([]core.Vec3, 0, BlockPixels),
		})
	}
	return wp
}

// run starts every worker, waits for all of them and merges their stats
func (wp *workerPool) run(buf []byte, origin core.Vec3) RenderStats {
	activeWorkers.Add(float64(len(wp.workers)))
	defer activeWorkers.Sub(float64(len(wp.workers)))

	for _, w := range wp.workers {
		wp.wg.Add(1)
		go w.run(&wp.wg, buf, origin)
	}
	wp.wg.Wait()

	config := wp.workers[0].renderer.config
	stats := RenderStats{
		Width:        config.Width,
		Height:       config.Height,
		Threads:      len(wp.workers),
		TotalPixels:  config.Width * config.Height,
		TotalSamples: config.Width * config.Height * config.SamplesPerPixel(),
	}
	for _, w := range wp.workers {
		stats.RayClusters += w.stats.rayClusters
		stats.Bounces += w.stats.bounces
	}
	return stats
}

func (w *rowWorker) run(wg *sync.WaitGroup, buf []byte, origin core.Vec3) {
	defer wg.Done()

	for _, row := range w.rows {
		w.renderRow(buf, origin, row)
	}
}

func (w *rowWorker) renderRow(buf []byte, origin core.Vec3, row int) {
	r := w.renderer
	width := r.config.Width
	scale := r.sampleScale()
	sampler := r.rowSampler(row)
	rowOffset := row * width * 3

	blockStart := 0
	w.colors = w.colors[:0]
	for col := 0; col < width; col++ {
		for g := range w.clusters {
			w.clusters[g] = r.camera.PixelRays(origin, row, col, g)
		}

		color, bounces := integrator.SampleGroups(r.tracer, w.clusters, sampler)
		w.stats.rayClusters += len(w.clusters)
		w.stats.bounces += bounces

		w.colors = append(w.colors, color)
		if len(w.colors) == BlockPixels {
			packBlock(buf[rowOffset+blockStart*3:], w.colors, scale)
			blockStart = col + 1
			w.colors = w.colors[:0]
		}
	}

	if len(w.colors) > 0 {
		packBlock(buf[rowOffset+blockStart*3:], w.colors, scale)
		w.colors = w.colors[:0]
	}
}
