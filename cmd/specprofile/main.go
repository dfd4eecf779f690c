package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ivlev/specprofile/internal/config"
	"github.com/ivlev/specprofile/internal/engine"
	"github.com/ivlev/specprofile/internal/logger"
	"github.com/ivlev/specprofile/internal/projection"
	"github.com/ivlev/specprofile/internal/source"
	"github.com/ivlev/specprofile/internal/system"
)

var buildVersion = "dev"

func main() {
	os.Exit(run())
}

// run keeps every exit path inside one function so deferred cleanup always
// runs before the process exits.
func run() int {
	defaults := config.Default()

	configPtr := flag.String("config", "", "YAML-файл с настройками (флаги имеют приоритет)")
	inputPtr := flag.String("input", "", "Путь к изображению, папке с кадрами или PDF (по умолчанию: самый свежий файл в input/images/)")
	outputPtr := flag.String("output", defaults.OutputDir, "Папка для отчета и графиков")
	orientationPtr := flag.String("orientation", "x", "Ось проекции: x (сумма по столбцам), y (сумма по строкам)")
	regionPtr := flag.String("region", "", "Область интереса x,y,w,h (по умолчанию: весь кадр)")
	dpiPtr := flag.Int("dpi", defaults.DPI, "DPI для страниц PDF")
	workersPtr := flag.Int("workers", defaults.Workers, "Потоки")
	plotPtr := flag.Bool("plot", defaults.Plot, "Сохранять PNG-график нормированного профиля")
	chartPtr := flag.Bool("chart", defaults.Chart, "Сохранять интерактивный HTML-график")
	saveGrayPtr := flag.Bool("save-gray", defaults.SaveGray, "Сохранять кадр (или область) в оттенках серого")
	formatPtr := flag.String("format", defaults.ImageFormat, "Формат изображений: png, tiff, bmp")
	logLevelPtr := flag.String("log-level", defaults.LogLevel, "Уровень логирования: debug, info, warn, error")
	statsPtr := flag.Bool("stats", defaults.ShowStats, "Показать отчет о производительности")

	flag.Parse()

	cfg := defaults
	if *configPtr != "" {
		loaded, err := config.Load(*configPtr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[-] Ошибка чтения конфигурации: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	// Явно заданные флаги перекрывают значения из файла
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputPath = *inputPtr
		case "output":
			cfg.OutputDir = *outputPtr
		case "orientation":
			o, err := projection.ParseOrientation(*orientationPtr)
			if err != nil {
				flagErr = err
			}
			cfg.Orientation = o
		case "region":
			r, err := config.ParseRegion(*regionPtr)
			if err != nil {
				flagErr = err
			}
			cfg.Region = r
		case "dpi":
			cfg.DPI = *dpiPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "plot":
			cfg.Plot = *plotPtr
		case "chart":
			cfg.Chart = *chartPtr
		case "save-gray":
			cfg.SaveGray = *saveGrayPtr
		case "format":
			cfg.ImageFormat = *formatPtr
		case "log-level":
			cfg.LogLevel = *logLevelPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		}
	})
	cfg.BuildVersion = buildVersion

	log := logger.NewConsole(cfg.LogLevel)

	if flagErr != nil {
		log.Error().Err(flagErr).Msg("неверный аргумент")
		return 2
	}

	if cfg.InputPath == "" {
		if err := os.MkdirAll("input/images", 0755); err != nil {
			log.Error().Err(err).Msg("не удалось создать input/images")
			return 1
		}
		latest, err := system.FindLatestImage("input/images")
		if err != nil {
			log.Error().Err(err).Msg("положите изображение в input/images/ или укажите -input")
			return 1
		}
		cfg.InputPath = latest
		fmt.Printf("[*] Выбран файл: %s\n", cfg.InputPath)
	}

	src, err := source.Open(cfg.InputPath, log)
	if err != nil {
		log.Error().Err(err).Msg("ошибка инициализации источника")
		return 1
	}
	defer src.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("[*] Источник: %s | Кадров/Страниц: %d | Ось: %s\n", cfg.InputPath, src.PageCount(), cfg.Orientation)

	project := engine.NewProfileProject(cfg, src, log)
	report, err := project.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("ошибка обработки")
		return 1
	}

	for _, p := range report.Profiles {
		fmt.Printf("[>] %s: %d точек, пик %.0f в позиции %d\n", p.Source, len(p.Sums), p.PeakValue, p.PeakIndex)
	}
	fmt.Printf("[+++] Успех! Отчет: %s\n", filepath.Join(cfg.OutputDir, engine.ReportName))
	return 0
}
