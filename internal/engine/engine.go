package engine

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/specprofile/internal/config"
	"github.com/ivlev/specprofile/internal/export"
	"github.com/ivlev/specprofile/internal/grid"
	"github.com/ivlev/specprofile/internal/logger"
	"github.com/ivlev/specprofile/internal/normalize"
	"github.com/ivlev/specprofile/internal/projection"
	"github.com/ivlev/specprofile/internal/render"
	"github.com/ivlev/specprofile/internal/source"
	"github.com/ivlev/specprofile/internal/system"
)

const ReportVersion = "1.0"

// ReportName is the file written to the output directory after a run.
const ReportName = "report.yaml"

type ProfileProject struct {
	Config *config.Config
	Source source.Source
	Log    zerolog.Logger

	exportLog zerolog.Logger
}

func NewProfileProject(cfg *config.Config, src source.Source, log zerolog.Logger) *ProfileProject {
	return &ProfileProject{
		Config:    cfg,
		Source:    src,
		Log:       logger.Component(log, "engine"),
		exportLog: logger.Component(log, "export"),
	}
}

// Run profiles every page of the source and writes the report. Pages are
// processed in parallel, up to Config.Workers at a time; the first failing
// page cancels the rest.
func (p *ProfileProject) Run(ctx context.Context) (*export.Report, error) {
	startTime := time.Now()

	if err := p.Config.Validate(); err != nil {
		return nil, err
	}

	pageCount := p.Source.PageCount()
	if pageCount == 0 {
		return nil, fmt.Errorf("источник не содержит страниц/кадров")
	}

	if err := os.MkdirAll(p.Config.OutputDir, 0755); err != nil {
		return nil, err
	}

	p.Log.Info().
		Str("input", p.Config.InputPath).
		Int("pages", pageCount).
		Stringer("orientation", p.Config.Orientation).
		Int("workers", p.Config.Workers).
		Msg("profiling started")

	profiles := make([]export.Profile, pageCount)
	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Config.Workers)
	for i := 0; i < pageCount; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			prof, err := p.processPage(i)
			if err != nil {
				return fmt.Errorf("страница %d (%s): %w", i, p.Source.Name(i), err)
			}
			profiles[i] = prof
			p.Log.Debug().
				Int("page", i).
				Int("peak_index", prof.PeakIndex).
				Int32("done", done.Add(1)).
				Int("total", pageCount).
				Msg("page profiled")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &export.Report{
		Version:  ReportVersion,
		RunID:    uuid.NewString(),
		Created:  time.Now().UTC(),
		Profiles: profiles,
	}

	reportPath := filepath.Join(p.Config.OutputDir, ReportName)
	if err := export.WriteReport(report, reportPath); err != nil {
		return nil, fmt.Errorf("ошибка записи отчета: %w", err)
	}
	p.exportLog.Info().Str("path", reportPath).Str("run_id", report.RunID).Msg("report written")

	if p.Config.ShowStats {
		p.logStats(pageCount, time.Since(startTime))
	}

	return report, nil
}

func (p *ProfileProject) processPage(i int) (export.Profile, error) {
	img, err := p.Source.RenderPage(i, p.Config.DPI)
	if err != nil {
		return export.Profile{}, err
	}

	// Projection needs scalar cells: color frames are reduced to luma first.
	switch g := grid.Extract(img).(type) {
	case grid.Grid[uint16]:
		return profileFrame(p, i, g, func(c grid.Grid[uint16]) (image.Image, error) {
			return render.ToGray16(c)
		})
	case grid.Grid[uint8]:
		return profileFrame(p, i, g, toGray8)
	case grid.Grid[grid.RGBA]:
		return profileFrame(p, i, grid.Map(g, grid.RGBA.Luma), toGray8)
	default:
		return export.Profile{}, fmt.Errorf("unexpected grid type %T", g)
	}
}

func toGray8(g grid.Grid[uint8]) (image.Image, error) {
	return render.ToGray(g)
}

func profileFrame[T grid.Scalar](p *ProfileProject, i int, g grid.Grid[T], toImage func(grid.Grid[T]) (image.Image, error)) (export.Profile, error) {
	cfg := p.Config
	name := p.Source.Name(i)

	// The region is in rendered pixels, so it can only be checked after RenderPage.
	if !cfg.Region.IsZero() {
		cropped, err := g.Crop(cfg.Region.Rect())
		if err != nil {
			return export.Profile{}, fmt.Errorf("область %s, кадр %dx%d: %w", cfg.Region, g.Width(), g.Height(), err)
		}
		g = cropped
	}

	sums, err := projection.Project(g, cfg.Orientation)
	if err != nil {
		return export.Profile{}, err
	}
	normalized, err := normalize.Normalize(sums)
	if err != nil {
		return export.Profile{}, err
	}
	peakIdx, peakVal, err := normalize.Peak(sums)
	if err != nil {
		return export.Profile{}, err
	}

	prof := export.Profile{
		Source:      name,
		Page:        i,
		Orientation: cfg.Orientation.String(),
		Width:       g.Width(),
		Height:      g.Height(),
		Total:       projection.Total(sums),
		PeakIndex:   peakIdx,
		PeakValue:   peakVal,
		Sums:        sums,
		Normalized:  normalized,
	}
	if !cfg.Region.IsZero() {
		prof.Region = cfg.Region.String()
	}

	base := filepath.Join(cfg.OutputDir, name)
	if cfg.Plot {
		if err := export.PlotPNG(prof, base+"_profile.png"); err != nil {
			return export.Profile{}, err
		}
		p.exportLog.Debug().Str("path", base+"_profile.png").Msg("plot saved")
	}
	if cfg.Chart {
		if err := writeChart(prof, base+"_profile.html"); err != nil {
			return export.Profile{}, err
		}
		p.exportLog.Debug().Str("path", base+"_profile.html").Msg("chart saved")
	}
	if cfg.SaveGray {
		img, err := toImage(g)
		if err != nil {
			return export.Profile{}, err
		}
		grayPath := base + "_gray" + export.Extension(cfg.ImageFormat)
		if err := export.SaveImage(img, grayPath, cfg.ImageFormat); err != nil {
			return export.Profile{}, err
		}
		p.exportLog.Debug().Str("path", grayPath).Msg("frame saved")
	}

	return prof, nil
}

func writeChart(prof export.Profile, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.ChartHTML(prof, f); err != nil {
		f.Close()
		return fmt.Errorf("chart %s: %w", path, err)
	}
	return f.Close()
}

func (p *ProfileProject) logStats(pageCount int, total time.Duration) {
	event := p.Log.Info().
		Str("build", p.Config.BuildVersion).
		Dur("total", total).
		Float64("pages_per_sec", float64(pageCount)/total.Seconds())

	used, percent, err := system.MemoryUsage()
	if err != nil {
		p.Log.Warn().Err(err).Msg("не удалось получить статистику памяти")
	} else {
		event = event.Uint64("mem_used_bytes", used).Float64("mem_used_percent", percent)
	}
	event.Msg("performance report")
}
