package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	billdomain "github.com/zerorisk/claimledger/internal/bill/domain"
	"github.com/zerorisk/claimledger/internal/cache"
	"github.com/zerorisk/claimledger/internal/clock"
	"github.com/zerorisk/claimledger/internal/hospitalcontext"
	"github.com/zerorisk/claimledger/internal/observability/metrics"
	recoverydomain "github.com/zerorisk/claimledger/internal/recovery/domain"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500

	summaryCacheTTL = 30 * time.Second
)

type ServiceParam struct {
	fx.In

	Log      *zap.Logger
	Clock    clock.Clock
	BillRepo billdomain.Repository
	Metrics  *metrics.RecoveryMetrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	clock   clock.Clock
	metrics *metrics.RecoveryMetrics

	billrepo billdomain.Repository

	payerCache   cache.Cache[snowflake.ID, []recoverydomain.PayerSummary]
	summaryCache cache.Cache[snowflake.ID, recoverydomain.RecoverySummary]
}

func NewService(p ServiceParam) recoverydomain.Service {
	return &Service{
		log:     p.Log.Named("recovery.service"),
		clock:   p.Clock,
		metrics: p.Metrics,

		billrepo: p.BillRepo,

		payerCache:   cache.NewTTLCache[snowflake.ID, []recoverydomain.PayerSummary](),
		summaryCache: cache.NewTTLCache[snowflake.ID, recoverydomain.RecoverySummary](),
	}
}

func (s *Service) ListBills(ctx context.Context, req recoverydomain.ListBillsRequest) (recoverydomain.ListBillsResponse, error) {
	hospitalID, err := hospitalIDFromContext(ctx)
	if err != nil {
		return recoverydomain.ListBillsResponse{}, err
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		return recoverydomain.ListBillsResponse{}, err
	}
	limit, offset, err := normalizeWindow(req.Limit, req.Offset)
	if err != nil {
		return recoverydomain.ListBillsResponse{}, err
	}

	bills, visits, patients, err := s.loadRecords(ctx, hospitalID)
	if err != nil {
		return recoverydomain.ListBillsResponse{}, err
	}

	enriched := recoverydomain.Enrich(bills, visits, patients, s.clock.Now())
	result := recoverydomain.Query(enriched, recoverydomain.QueryOptions{
		PayerType: req.PayerType,
		Status:    status,
		Search:    req.Search,
		Limit:     limit,
		Offset:    offset,
	})

	return recoverydomain.ListBillsResponse{
		Bills:  result.Data,
		Count:  result.Count,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (s *Service) PayerSummaries(ctx context.Context) (recoverydomain.PayerSummariesResponse, error) {
	hospitalID, err := hospitalIDFromContext(ctx)
	if err != nil {
		return recoverydomain.PayerSummariesResponse{}, err
	}

	if cached, ok := s.payerCache.Get(hospitalID); ok {
		return recoverydomain.PayerSummariesResponse{Payers: cached}, nil
	}

	bills, visits, _, err := s.loadRecords(ctx, hospitalID)
	if err != nil {
		return recoverydomain.PayerSummariesResponse{}, err
	}

	payers := recoverydomain.ByPayer(bills, visits)
	s.payerCache.Set(hospitalID, payers, summaryCacheTTL)
	return recoverydomain.PayerSummariesResponse{Payers: payers}, nil
}

func (s *Service) Summary(ctx context.Context) (recoverydomain.SummaryResponse, error) {
	hospitalID, err := hospitalIDFromContext(ctx)
	if err != nil {
		return recoverydomain.SummaryResponse{}, err
	}

	if cached, ok := s.summaryCache.Get(hospitalID); ok {
		s.metrics.ObserveSummaryCache("hit")
		return recoverydomain.SummaryResponse{Summary: cached}, nil
	}
	s.metrics.ObserveSummaryCache("miss")

	rows, err := s.billrepo.ListBills(ctx, hospitalID)
	if err != nil {
		return recoverydomain.SummaryResponse{}, err
	}
	bills := make([]recoverydomain.RawBill, 0, len(rows))
	for _, row := range rows {
		bills = append(bills, row.ToRaw())
	}

	summary := recoverydomain.Summarize(bills)
	s.summaryCache.Set(hospitalID, summary, summaryCacheTTL)
	return recoverydomain.SummaryResponse{Summary: summary}, nil
}

func (s *Service) loadRecords(ctx context.Context, hospitalID snowflake.ID) ([]recoverydomain.RawBill, []recoverydomain.RawVisit, []recoverydomain.RawPatient, error) {
	billRows, err := s.billrepo.ListBills(ctx, hospitalID)
	if err != nil {
		return nil, nil, nil, err
	}
	visitRows, err := s.billrepo.ListVisits(ctx, hospitalID)
	if err != nil {
		return nil, nil, nil, err
	}
	patientRows, err := s.billrepo.ListPatients(ctx, hospitalID)
	if err != nil {
		return nil, nil, nil, err
	}

	bills := make([]recoverydomain.RawBill, 0, len(billRows))
	for _, row := range billRows {
		bills = append(bills, row.ToRaw())
	}
	visits := make([]recoverydomain.RawVisit, 0, len(visitRows))
	for _, row := range visitRows {
		visits = append(visits, row.ToRaw())
	}
	patients := make([]recoverydomain.RawPatient, 0, len(patientRows))
	for _, row := range patientRows {
		patients = append(patients, row.ToRaw())
	}
	return bills, visits, patients, nil
}

func hospitalIDFromContext(ctx context.Context) (snowflake.ID, error) {
	if hospitalID, ok := hospitalcontext.HospitalIDFromContext(ctx); ok {
		return hospitalID, nil
	}
	return 0, recoverydomain.ErrInvalidHospital
}

func parseStatus(raw string) (recoverydomain.BillStatus, error) {
	switch recoverydomain.BillStatus(raw) {
	case "", recoverydomain.BillStatusPending, recoverydomain.BillStatusReceived,
		recoverydomain.BillStatusPartial, recoverydomain.BillStatusNMI,
		recoverydomain.BillStatusOverdue:
		return recoverydomain.BillStatus(raw), nil
	default:
		return "", recoverydomain.ErrInvalidStatus
	}
}

func normalizeWindow(limit, offset int) (int, int, error) {
	if limit < 0 || limit > maxPageSize {
		return 0, 0, recoverydomain.ErrInvalidLimit
	}
	if offset < 0 {
		return 0, 0, recoverydomain.ErrInvalidOffset
	}
	if limit == 0 {
		limit = defaultPageSize
	}
	return limit, offset, nil
}
