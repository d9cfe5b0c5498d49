package services

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"learnhub_backend/internal/models"
	"learnhub_backend/internal/repositories"
	"learnhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ============================================================================
// Фейки хранилища и репозитория
// ============================================================================

type fakeStorage struct {
	saves []string
}

func (s *fakeStorage) Save(_ context.Context, path string, reader io.Reader, _ string) error {
	io.Copy(io.Discard, reader)
	s.saves = append(s.saves, path)
	return nil
}

func (s *fakeStorage) Get(_ context.Context, _ string) (io.ReadCloser, error) {
	return nil, nil
}

func (s *fakeStorage) Delete(_ context.Context, _ string) error { return nil }

func (s *fakeStorage) Exists(_ context.Context, _ string) (bool, error) { return false, nil }

func (s *fakeStorage) GetURL(_ context.Context, path string) (string, error) {
	return "https://cdn.example/" + path, nil
}

func (s *fakeStorage) GetSignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "https://cdn.example/" + path, nil
}

func (s *fakeStorage) GetSize(_ context.Context, _ string) (int64, error) { return 0, nil }

type fakeUploadRepo struct {
	created []*models.Upload
}

func (r *fakeUploadRepo) Create(_ *gorm.DB, upload *models.Upload) error {
	r.created = append(r.created, upload)
	return nil
}

func (r *fakeUploadRepo) FindByID(_ *gorm.DB, id string) (*models.Upload, error) {
	for _, u := range r.created {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUploadRepo) FindAll(_ *gorm.DB, _ *repositories.UploadFilters) ([]models.Upload, error) {
	out := make([]models.Upload, 0, len(r.created))
	for _, u := range r.created {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUploadRepo) Delete(_ *gorm.DB, _ string) error { return nil }

// makeFileHeader собирает настоящий multipart.FileHeader из буфера
func makeFileHeader(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	require.NotEmpty(t, form.File["file"])
	return form.File["file"][0]
}

// ============================================================================
// Тесты загрузки
// ============================================================================

// TestUpload_InvalidBucket - неизвестный бакет отклоняется
// ДО любого обращения к хранилищу
func TestUpload_InvalidBucket(t *testing.T) {
	store := &fakeStorage{}
	svc := NewUploadService(store, &fakeUploadRepo{}, 0)

	file := makeFileHeader(t, "a.png", "data")
	_, err := svc.Upload(context.Background(), nil, "user-1", "invalid-bucket", "", file)

	assert.ErrorIs(t, err, apperrors.ErrInvalidBucket)
	assert.Empty(t, store.saves, "хранилище не должно вызываться")
}

// TestUpload_NoFile - без файла загрузка отклоняется
func TestUpload_NoFile(t *testing.T) {
	svc := NewUploadService(&fakeStorage{}, &fakeUploadRepo{}, 0)

	_, err := svc.Upload(context.Background(), nil, "user-1", "course-videos", "", nil)
	assert.ErrorIs(t, err, apperrors.ErrNoFileProvided)
}

// TestUpload_FileTooLarge - превышение лимита отклоняется
func TestUpload_FileTooLarge(t *testing.T) {
	store := &fakeStorage{}
	svc := NewUploadService(store, &fakeUploadRepo{}, 4)

	file := makeFileHeader(t, "a.png", "more than four bytes")
	_, err := svc.Upload(context.Background(), nil, "user-1", "course-videos", "", file)

	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
	assert.Empty(t, store.saves)
}

// TestUpload_DistinctPaths - два файла с одинаковым исходным именем
// в одной папке получают разные пути
func TestUpload_DistinctPaths(t *testing.T) {
	store := &fakeStorage{}
	repo := &fakeUploadRepo{}
	svc := NewUploadService(store, repo, 0)

	first, err := svc.Upload(context.Background(), nil, "user-1", "course-thumbnails", "lesson-1", makeFileHeader(t, "a.png", "one"))
	require.NoError(t, err)
	second, err := svc.Upload(context.Background(), nil, "user-1", "course-thumbnails", "lesson-1", makeFileHeader(t, "a.png", "two"))
	require.NoError(t, err)

	assert.NotEqual(t, first.FullPath, second.FullPath)
	assert.Len(t, store.saves, 2)
	assert.Len(t, repo.created, 2)

	// структура ответа
	assert.Equal(t, "course-thumbnails", first.Bucket)
	assert.Equal(t, "a.png", first.OriginalName)
	assert.True(t, strings.HasPrefix(first.FullPath, "course-thumbnails/lesson-1/"))
	assert.True(t, strings.HasSuffix(first.FileName, ".png"), "расширение сохраняется: %s", first.FileName)
	assert.Equal(t, "https://cdn.example/"+first.FullPath, first.PublicURL)
}

// TestGenerateFileName - имя содержит таймстемп и случайный суффикс
func TestGenerateFileName(t *testing.T) {
	a, err := generateFileName("video.MP4")
	require.NoError(t, err)
	b, err := generateFileName("video.MP4")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, ".mp4"), "расширение приводится к нижнему регистру: %s", a)
}
