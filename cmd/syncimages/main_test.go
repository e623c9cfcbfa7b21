package main

import (
	"bytes"
	"testing"
	"time"

	"boutiqueCMS/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer

	printReport(&buf, &service.SyncReport{Processed: 1250, Added: 3, Skipped: 1247, HeroAdded: true, Bytes: 3 << 20}, 1500*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "Просмотрено файлов: 1,250")
	assert.Contains(t, out, "Добавлено: 3 (3.0 MiB)")
	assert.Contains(t, out, "Пропущено: 1,247")
	assert.Contains(t, out, "Главное изображение зарегистрировано")
	assert.Contains(t, out, "Время: 1.5s")
}
