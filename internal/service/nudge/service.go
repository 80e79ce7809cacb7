package nudge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brandazine/stock-nudge/internal/analytics"
	"github.com/brandazine/stock-nudge/internal/email"
	"github.com/brandazine/stock-nudge/internal/model"
	"github.com/brandazine/stock-nudge/internal/notify"
	"github.com/brandazine/stock-nudge/internal/report"
	"github.com/brandazine/stock-nudge/internal/repository"
	"github.com/brandazine/stock-nudge/internal/stock"
	apperrors "github.com/brandazine/stock-nudge/pkg/errors"
	"github.com/brandazine/stock-nudge/pkg/logger"
)

const (
	mailCycleWeeks = 3

	// Athena string parameter layout (the warehouse compares text timestamps).
	paramTimeLayout = "2006-01-02 15:04:05"
	fileDateLayout  = "060102"
)

// QueryRunner executes the analytics query and returns the result location.
type QueryRunner interface {
	Execute(ctx context.Context, params []string) (string, error)
}

// ResultFetcher downloads the raw result bytes.
type ResultFetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// Renderer turns a report table into a spreadsheet artifact.
type Renderer interface {
	Render(table stock.Table, opts report.Options) ([]byte, error)
}

// RunReport is the end-of-run delivery summary.
type RunReport struct {
	TotalBrands int
	Succeeded   []string
	Failed      []string
}

// Config holds the per-deployment knobs of the run.
type Config struct {
	// OpsRecipient is appended to every brand's mailing list for auditing.
	OpsRecipient string
}

// Service runs one stock-nudge batch: query, classify, filter, dedupe,
// report, per-brand delivery, record.
type Service struct {
	cfg      Config
	runner   QueryRunner
	fetcher  ResultFetcher
	renderer Renderer
	brands   repository.BrandRepository
	outreach repository.OutreachRepository
	notifier notify.Notifier
	mailer   email.Sender
	logger   *logger.Logger
	now      func() time.Time
}

func NewService(
	cfg Config,
	runner QueryRunner,
	fetcher ResultFetcher,
	renderer Renderer,
	brands repository.BrandRepository,
	outreach repository.OutreachRepository,
	notifier notify.Notifier,
	mailer email.Sender,
	logger *logger.Logger,
) *Service {
	return &Service{
		cfg:      cfg,
		runner:   runner,
		fetcher:  fetcher,
		renderer: renderer,
		brands:   brands,
		outreach: outreach,
		notifier: notifier,
		mailer:   mailer,
		logger:   logger,
		now:      time.Now,
	}
}

// Run executes one batch. Query failures are terminal and reported to the
// operations channel; per-brand delivery failures are recovered and only
// surface in the summary.
func (s *Service) Run(ctx context.Context) error {
	now := s.now()

	location, err := s.runner.Execute(ctx, queryParams(now))
	if err != nil {
		s.reportFatal(ctx, err)
		return err
	}

	raw, err := s.fetcher.Fetch(ctx, location)
	if err != nil {
		s.reportFatal(ctx, err)
		return err
	}

	candidates, err := analytics.DecodeCandidates(bytes.NewReader(raw))
	if err != nil {
		err = apperrors.Internal(err)
		s.reportFatal(ctx, err)
		return err
	}
	s.logger.Info("loaded candidate rows", "count", len(candidates))

	eligible, err := s.selectEligible(ctx, now, candidates)
	if err != nil {
		return err
	}

	batches, err := s.dedupe(ctx, now, eligible)
	if err != nil {
		return err
	}

	if err := s.uploadFullReport(ctx, now, eligible); err != nil {
		// The ops report is informational; brand mails still go out.
		s.logger.Error(err, "failed to upload operations report")
	}

	runReport, err := s.deliverBatches(ctx, now, batches)
	if err != nil {
		return err
	}

	if err := s.notifier.PostMessage(ctx, summaryMessage(runReport)); err != nil {
		s.logger.Error(err, "failed to post run summary")
	}
	return nil
}

// selectEligible classifies every row and applies the eligibility chain.
// Degenerate rows (zero tryset count) are dropped, not fatal.
func (s *Service) selectEligible(ctx context.Context, now time.Time, candidates []model.Candidate) ([]model.Candidate, error) {
	requestedIDs, err := s.outreach.DistinctRequestedProductIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load requested products: %w", err)
	}
	requested := stock.NewProductSet(requestedIDs)

	classified := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		enriched, err := stock.Classify(c, requested)
		if err != nil {
			if errors.Is(err, stock.ErrZeroTrysetCount) {
				s.logger.Warn("dropping degenerate row", "product_id", c.ProductID)
				continue
			}
			return nil, apperrors.DegenerateRow(c.ProductID, err)
		}
		classified = append(classified, enriched)
	}

	eligible := stock.FilterHighDemand(classified, stock.NewCutoffs(now))
	s.logger.Info("filtered high demand stock", "eligible", len(eligible))
	return eligible, nil
}

func (s *Service) dedupe(ctx context.Context, now time.Time, eligible []model.Candidate) (stock.BrandBatches, error) {
	cycleStart := now.AddDate(0, 0, -7*mailCycleWeeks)

	brandIDs, err := s.outreach.RecentlyNotifiedBrandIDs(ctx, cycleStart)
	if err != nil {
		return nil, fmt.Errorf("failed to load recently notified brands: %w", err)
	}
	productIDs, err := s.outreach.RecentlyRequestedProductIDs(ctx, cycleStart)
	if err != nil {
		return nil, fmt.Errorf("failed to load recently requested products: %w", err)
	}

	return stock.DedupeByOutreach(eligible, stock.NewBrandSet(brandIDs), stock.NewProductSet(productIDs)), nil
}

func (s *Service) uploadFullReport(ctx context.Context, now time.Time, eligible []model.Candidate) error {
	table := stock.FullReportTable(eligible)
	if table.Empty() {
		s.logger.Info("no eligible products, skipping operations report")
		return nil
	}

	data, err := s.renderer.Render(table, report.Options{})
	if err != nil {
		return fmt.Errorf("failed to render operations report: %w", err)
	}

	date := now.Format(fileDateLayout)
	return s.notifier.UploadReport(ctx, data,
		fmt.Sprintf("High-Demand-Stock-%s.xlsx", date),
		fmt.Sprintf("[%s] 인기 재고 목록", date),
		"🤖인기재고 목록",
	)
}

// deliverBatches mails each eligible FREE/NORMAL brand and records the
// outreach only after delivery succeeds. One brand's failure never stops
// the others.
func (s *Service) deliverBatches(ctx context.Context, now time.Time, batches stock.BrandBatches) (*RunReport, error) {
	runReport := &RunReport{}
	if len(batches) == 0 {
		return runReport, nil
	}

	brands, err := s.brands.ListForMailing(ctx, batches.BrandIDs(),
		[]model.SubscriptionType{model.SubscriptionFree, model.SubscriptionNormal})
	if err != nil {
		return nil, fmt.Errorf("failed to load mailing brands: %w", err)
	}
	runReport.TotalBrands = len(brands)

	for _, brand := range brands {
		products := batches[brand.ID]
		if len(products) == 0 {
			continue
		}

		if err := s.notifyBrand(ctx, now, brand, products); err != nil {
			s.logger.Error(err, "brand delivery failed", "brand", brand.Name)
			runReport.Failed = append(runReport.Failed, brand.Name)
			continue
		}
		runReport.Succeeded = append(runReport.Succeeded, brand.Name)
	}
	return runReport, nil
}

func (s *Service) notifyBrand(ctx context.Context, now time.Time, brand *model.Brand, products []model.Candidate) error {
	data, err := s.renderer.Render(stock.MailReportTable(products), report.Options{ForMail: true})
	if err != nil {
		return apperrors.Delivery(brand.Name, err)
	}

	var extra []string
	if s.cfg.OpsRecipient != "" {
		extra = append(extra, s.cfg.OpsRecipient)
	}
	mail := &email.ReportMail{
		BrandName:      brand.Name,
		Recipients:     brand.Recipients(extra...),
		AttachmentName: fmt.Sprintf("%s_%s_인기재고.xlsx", now.Format(fileDateLayout), brand.Name),
		Attachment:     data,
	}
	if err := s.mailer.SendReport(ctx, mail); err != nil {
		return apperrors.Delivery(brand.Name, err)
	}

	// Record strictly after a successful send; a failed brand leaves no
	// trace and stays eligible for the next run.
	requests := make([]*model.OutreachRequest, 0, len(products))
	for _, p := range products {
		requests = append(requests, &model.OutreachRequest{
			ID:            uuid.New(),
			ProductID:     p.ProductID,
			Round:         0,
			RequestedAt:   now,
			RequestAmount: p.AdequateStockCount,
		})
	}
	if err := s.outreach.CreateBatch(ctx, requests); err != nil {
		return apperrors.Delivery(brand.Name, fmt.Errorf("mail sent but recording failed: %w", err))
	}
	return nil
}

func (s *Service) reportFatal(ctx context.Context, err error) {
	msg := fmt.Sprintf("FAIL TO EXECUTE QUERY, See error\n%v", err)
	if postErr := s.notifier.PostMessage(ctx, msg); postErr != nil {
		s.logger.Error(postErr, "failed to report fatal error")
	}
}

// queryParams returns the three window parameters (view, add-to-closet,
// like), all one week back from now.
func queryParams(now time.Time) []string {
	lastWeek := now.AddDate(0, 0, -7).Format(paramTimeLayout)
	return []string{lastWeek, lastWeek, lastWeek}
}

func summaryMessage(r *RunReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "STOCK REQUEST LOG | TOTAL: [%d]\n", r.TotalBrands)
	b.WriteString("===========================\n")
	fmt.Fprintf(&b, "SUCCESS: %d\n", len(r.Succeeded))
	b.WriteString("---------------------------\n")
	b.WriteString(strings.Join(r.Succeeded, "\n"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "FAILED: %d\n", len(r.Failed))
	b.WriteString("---------------------------\n")
	b.WriteString(strings.Join(r.Failed, "\n"))
	b.WriteString("\n\n")
	return b.String()
}
