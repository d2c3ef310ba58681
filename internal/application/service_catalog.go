package application

import (
	"context"
	"fmt"

	"github.com/tonycardosa/afiliados-rst/internal/domain"
)

// SyncBrands refreshes the local brand catalog from the upstream manufacturer
// list. Upserts are keyed by external id, so the operation converges no matter
// how often it runs. Brands deleted upstream are kept locally: old commissions
// may still reference their rules.
func (s *Service) SyncBrands(ctx context.Context) (BrandSyncReport, error) {
	if s.cfg.SourceAPIURL == "" || s.cfg.SourceAPIKey == "" {
		return BrandSyncReport{}, domain.ErrConfiguration
	}

	sourceBrands, err := s.source.FetchBrands(ctx)
	if err != nil {
		return BrandSyncReport{}, fmt.Errorf("fetch brands: %w", err)
	}

	var report BrandSyncReport
	for _, sb := range sourceBrands {
		if _, err := s.brands.Upsert(ctx, sb.ExternalID, sb.Name); err != nil {
			return report, fmt.Errorf("upsert brand %d: %w", sb.ExternalID, err)
		}
		report.SyncedCount++
	}
	s.logger.InfoContext(ctx, "brand catalog synced",
		"operation", "sync_brands",
		"outcome", "success",
		"brand_count", report.SyncedCount,
	)
	return report, nil
}
