package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"strings"
	"testing"

	"boutiqueCMS/internal/category"
	"boutiqueCMS/internal/imageproc"
	"boutiqueCMS/internal/models"
	"boutiqueCMS/internal/repository"
	"boutiqueCMS/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	xwebp "golang.org/x/image/webp"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	rng := rand.New(rand.NewSource(7))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(x ^ y), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newImageFixture(t *testing.T) (ImageService, *MockImageRepository, *storage.LocalStorage) {
	t.Helper()

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	repo := new(MockImageRepository)
	svc := NewImageService(repo, store, imageproc.New(store, imageproc.DefaultOptions()), category.NewRegistry())

	return svc, repo, store
}

func TestImageService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("Успешная загрузка создаёт три файла", func(t *testing.T) {
		svc, repo, store := newImageFixture(t)
		repo.On("Create", ctx, mock.AnythingOfType("*models.Image")).Return(nil)
		src := testPNG(t, 1500, 1000)

		img, err := svc.Upload(ctx, UploadInput{
			Data:         src,
			OriginalName: "rose.png",
			Category:     "mariage_ceremonie",
			AltText:      " Roses ",
			BaseURL:      "https://api.example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "mariage_ceremonie", img.Category)
		assert.Equal(t, "Roses", *img.AltText)
		assert.Equal(t, models.VariantMimeType, img.MimeType)
		assert.Equal(t, 1200, img.Width)
		assert.Equal(t, 800, img.Height)
		assert.True(t, strings.HasPrefix(img.URL, "https://api.example.com/api/serve-image/"))
		assert.True(t, strings.HasSuffix(img.URL, "-optimized.webp"))
		assert.True(t, strings.HasSuffix(img.ThumbnailURL, "-thumbnail.webp"))
		assert.True(t, strings.HasSuffix(img.Filename, ".png"))

		for _, u := range []string{img.URL, img.ThumbnailURL} {
			f, info, err := store.Open(ctx, storedName(u))
			require.NoError(t, err)
			_, err = xwebp.DecodeConfig(f)
			f.Close()
			assert.NoError(t, err, "вариант %s должен быть WebP", u)
			assert.Less(t, info.Size, int64(len(src)))
		}

		ok, err := store.Exists(ctx, img.Filename)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Неизвестная категория заменяется на general", func(t *testing.T) {
		svc, repo, _ := newImageFixture(t)
		repo.On("Create", ctx, mock.AnythingOfType("*models.Image")).Return(nil)

		img, err := svc.Upload(ctx, UploadInput{Data: testPNG(t, 64, 64), Category: "inconnue"})

		require.NoError(t, err)
		assert.Equal(t, "general", img.Category)
		assert.Nil(t, img.AltText)
	})

	t.Run("Пустой файл", func(t *testing.T) {
		svc, repo, _ := newImageFixture(t)

		_, err := svc.Upload(ctx, UploadInput{})

		assert.ErrorIs(t, err, ErrEmptyFile)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Не изображение", func(t *testing.T) {
		svc, _, store := newImageFixture(t)

		_, err := svc.Upload(ctx, UploadInput{Data: []byte("%PDF-1.7 not an image")})

		assert.ErrorIs(t, err, ErrUnsupportedImage)
		files, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("Сбой базы удаляет все файлы", func(t *testing.T) {
		svc, repo, store := newImageFixture(t)
		repo.On("Create", ctx, mock.Anything).Return(errors.New("db down"))

		_, err := svc.Upload(ctx, UploadInput{Data: testPNG(t, 200, 100)})

		require.Error(t, err)
		files, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}

func TestImageService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Расчёт страниц", func(t *testing.T) {
		svc, repo, _ := newImageFixture(t)
		images := []*models.Image{{ID: "a"}, {ID: "b"}}
		repo.On("List", ctx, "fleurs", 20, 40).Return(images, 41, nil)

		page, err := svc.List(ctx, "fleurs", 3, 20)

		require.NoError(t, err)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, 3, page.CurrentPage)
		assert.Equal(t, 41, page.TotalImages)
		assert.Len(t, page.Data, 2)
	})

	t.Run("Некорректная страница не доходит до базы", func(t *testing.T) {
		svc, repo, _ := newImageFixture(t)

		_, err := svc.List(ctx, "", 0, 20)

		assert.ErrorIs(t, err, ErrInvalidPagination)
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestImageService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Удаляет запись и файлы", func(t *testing.T) {
		svc, repo, store := newImageFixture(t)
		for _, name := range []string{"b.jpg", "b-optimized.webp", "b-thumbnail.webp"} {
			_, err := store.Save(ctx, name, strings.NewReader("x"), 1, "")
			require.NoError(t, err)
		}
		record := &models.Image{
			ID:           "img-1",
			Filename:     "b.jpg",
			URL:          "http://h/api/serve-image/b-optimized.webp",
			OriginalURL:  "http://h/api/serve-image/b.jpg",
			ThumbnailURL: "http://h/api/serve-image/b-thumbnail.webp",
		}
		repo.On("GetByID", ctx, "img-1").Return(record, nil)
		repo.On("Delete", ctx, "img-1").Return(nil)

		removed, err := svc.Delete(ctx, "img-1")

		require.NoError(t, err)
		assert.Equal(t, 3, removed)
		files, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("Запись не найдена", func(t *testing.T) {
		svc, repo, _ := newImageFixture(t)
		repo.On("GetByID", ctx, "missing").Return(nil, repository.ErrNotFound)

		_, err := svc.Delete(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestImageService_Open(t *testing.T) {
	svc, _, _ := newImageFixture(t)

	_, _, err := svc.Open(context.Background(), "../etc/passwd")
	assert.ErrorIs(t, err, storage.ErrInvalidName)

	_, _, err = svc.Open(context.Background(), "absent.webp")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestImageFiles(t *testing.T) {
	synced := &models.Image{
		Filename:     "fleurs/rose.jpg",
		URL:          "http://h/api/serve-image/fleurs/rose.jpg",
		OriginalURL:  "http://h/api/serve-image/fleurs/rose.jpg",
		ThumbnailURL: "http://h/api/serve-image/fleurs/rose.jpg",
	}

	assert.Equal(t, []string{"fleurs/rose.jpg"}, imageFiles(synced))
}
