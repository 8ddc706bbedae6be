package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayase-dev/otodoke/internal/domain"
	"github.com/ayase-dev/otodoke/internal/repository"
	"github.com/ayase-dev/otodoke/internal/service"
	"github.com/ayase-dev/otodoke/internal/testutil"
)

func seededStore(t *testing.T) repository.CatalogRepo {
	t.Helper()
	repo := repository.NewSQLiteCatalogRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.UpsertProduct(ctx, testutil.FestivalTeeRow()))
	require.NoError(t, repo.UpsertSKUs(ctx, "prd_tee", testutil.FestivalTeeSKUs()))
	return repo
}

func TestImportSchedulesAppliesOverrides(t *testing.T) {
	repo := seededStore(t)
	svc := service.NewImportService(repo)
	ctx := context.Background()

	csvData := "code,schedule\nTEE-RED,20260707\nSIZE-M,20260708\n"
	result, err := svc.ImportSchedules(ctx, "prd_tee", strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Lines)
	assert.Equal(t, 2, result.Updated)
	assert.Empty(t, result.Missing)

	skus, err := repo.GetSKUs(ctx, "prd_tee", []string{"TEE-RED", "SIZE-M"})
	require.NoError(t, err)
	for _, s := range skus {
		assert.True(t, s.Schedule.Explicit, s.Code)
	}
}

func TestImportSchedulesEmptyNumericClearsOverride(t *testing.T) {
	repo := seededStore(t)
	svc := service.NewImportService(repo)
	ctx := context.Background()

	result, err := svc.ImportSchedules(ctx, "prd_tee", strings.NewReader("TEE-BLUE,\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	skus, err := repo.GetSKUs(ctx, "prd_tee", []string{"TEE-BLUE"})
	require.NoError(t, err)
	assert.False(t, skus[0].Schedule.Explicit)
}

func TestImportSchedulesReportsUnknownCodes(t *testing.T) {
	repo := seededStore(t)
	svc := service.NewImportService(repo)

	csvData := "TEE-RED,20260707\nNO-SUCH,20260707\n"
	result, err := svc.ImportSchedules(context.Background(), "prd_tee", strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Lines)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, []string{"NO-SUCH"}, result.Missing)
}

func TestImportSchedulesRejectsBadNumeric(t *testing.T) {
	repo := seededStore(t)
	svc := service.NewImportService(repo)

	_, err := svc.ImportSchedules(context.Background(), "prd_tee",
		strings.NewReader("TEE-RED,not-a-date\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schedule")
}

func TestImportSchedulesSkipsBlankLines(t *testing.T) {
	repo := seededStore(t)
	svc := service.NewImportService(repo)

	result, err := svc.ImportSchedules(context.Background(), "prd_tee",
		strings.NewReader("code\nTEE-RED,20260707\n,\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Lines)
	assert.Equal(t, 1, result.Updated)
}

func TestDeliveryReportThroughService(t *testing.T) {
	repo := seededStore(t)
	svc := service.NewCatalogService(repo, testutil.FixedCalendar())
	ctx := context.Background()

	report, err := svc.DeliveryReport(ctx, "prd_tee", domain.BaseLocale, true)
	require.NoError(t, err)

	// The blue and green tees also run late, but defaults only admit the
	// first candidate of each group, so just GIFT-BOX delays.
	require.Len(t, report.SKUs, 1)
	assert.Equal(t, "GIFT-BOX", report.SKUs[0].Code)
	assert.Equal(t, "ギフト包装", report.SKUs[0].Name)
}

func TestDeliveryReportNotFound(t *testing.T) {
	repo := repository.NewSQLiteCatalogRepo(testutil.NewTestDB(t))
	svc := service.NewCatalogService(repo, testutil.FixedCalendar())

	_, err := svc.DeliveryReport(context.Background(), "prd_nope", domain.BaseLocale, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductDetailThroughService(t *testing.T) {
	repo := seededStore(t)
	svc := service.NewCatalogService(repo, testutil.FixedCalendar())

	p, err := svc.ProductDetail(context.Background(), "prd_tee", domain.BaseLocale)
	require.NoError(t, err)
	assert.Equal(t, "フェスTシャツ", p.Title)
	require.Len(t, p.Variants, 2)
	assert.Len(t, p.SKUs, 7)
}
