// Command syncimages registers image files already present in storage that have no database record.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"boutiqueCMS/cmd/app"
	"boutiqueCMS/internal/config"
	"boutiqueCMS/internal/logger"
	"boutiqueCMS/internal/service"

	"github.com/dustin/go-humanize"
)

func main() {
	cfg := config.LoadConfig()
	log := logger.Init(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	flags := flag.NewFlagSet("syncimages", flag.ExitOnError)
	hero := flags.String("hero", "", "файл главного изображения, например hero.jpg")
	baseURL := flags.String("base-url", fmt.Sprintf("http://localhost:%d", cfg.ServerPort), "публичный адрес API")
	timeout := flags.Duration("timeout", 10*time.Minute, "максимальная длительность синхронизации")
	flags.Parse(os.Args[1:])

	db, _, services := app.App(cfg)
	defer db.CloseDB()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	report, err := services.Sync.Sync(ctx, service.SyncOptions{BaseURL: *baseURL, HeroFile: *hero})
	if err != nil {
		log.Fatal().Err(err).Msg("синхронизация не удалась")
	}

	printReport(os.Stdout, report, time.Since(start))
}

func printReport(w io.Writer, report *service.SyncReport, elapsed time.Duration) {
	fmt.Fprintf(w, "Просмотрено файлов: %s\n", humanize.Comma(int64(report.Processed)))
	fmt.Fprintf(w, "Добавлено: %s (%s)\n", humanize.Comma(int64(report.Added)), humanize.IBytes(uint64(report.Bytes)))
	fmt.Fprintf(w, "Пропущено: %s\n", humanize.Comma(int64(report.Skipped)))
	if report.HeroAdded {
		fmt.Fprintln(w, "Главное изображение зарегистрировано")
	}
	fmt.Fprintf(w, "Время: %s\n", elapsed.Round(time.Millisecond))
}
