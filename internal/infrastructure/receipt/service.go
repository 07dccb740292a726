package receipt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	appbooking "github.com/venuebook/backend/internal/application/booking"
	"github.com/venuebook/backend/internal/domain/booking"
	"github.com/venuebook/backend/internal/infrastructure/config"
)

// Renderer turns a complete HTML document into PDF bytes
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// Service produces receipt PDFs for recorded payments. Generation runs
// asynchronously so the payment transaction never waits on Chrome; failures
// are logged and dropped.
type Service struct {
	renderer  Renderer
	outputDir string
	timeout   time.Duration
	logger    *zap.Logger
	wg        sync.WaitGroup
}

// NewService creates a receipt service writing PDFs to cfg.OutputDir
func NewService(renderer Renderer, cfg config.ReceiptConfig, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create receipt output directory: %w", err)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultRenderTimeout
	}
	return &Service{
		renderer:  renderer,
		outputDir: cfg.OutputDir,
		timeout:   timeout,
		logger:    logger,
	}, nil
}

// PaymentRecorded generates a receipt PDF in the background
func (s *Service) PaymentRecorded(b *booking.Booking, p *booking.Payment) {
	issuedAt := time.Now()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.generate(ctx, b, p, issuedAt); err != nil {
			s.logger.Error("receipt generation failed",
				zap.String("booking_id", b.ID.String()),
				zap.String("payment_id", p.ID.String()),
				zap.Error(err))
		}
	}()
}

func (s *Service) generate(ctx context.Context, b *booking.Booking, p *booking.Payment, issuedAt time.Time) error {
	html, err := BuildReceiptHTML(b, p, issuedAt)
	if err != nil {
		return err
	}

	pdfData, err := s.renderer.Render(ctx, html)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("receipt_%s_%d.pdf", p.ID, issuedAt.Unix())
	path := filepath.Join(s.outputDir, filename)
	if err := os.WriteFile(path, pdfData, 0o644); err != nil {
		return fmt.Errorf("failed to write receipt file: %w", err)
	}

	s.logger.Info("receipt written",
		zap.String("booking_id", b.ID.String()),
		zap.String("payment_id", p.ID.String()),
		zap.String("path", path))
	return nil
}

// Close waits for in-flight receipt generations to finish
func (s *Service) Close() error {
	s.wg.Wait()
	return nil
}

// Ensure Service implements ReceiptNotifier
var _ appbooking.ReceiptNotifier = (*Service)(nil)

// NoopNotifier is used when receipt generation is disabled
type NoopNotifier struct{}

// PaymentRecorded does nothing
func (NoopNotifier) PaymentRecorded(*booking.Booking, *booking.Payment) {}

// Ensure NoopNotifier implements ReceiptNotifier
var _ appbooking.ReceiptNotifier = NoopNotifier{}
