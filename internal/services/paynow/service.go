package paynow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "splitpay/internal/domain/paynow"
	appErrors "splitpay/internal/errors"
	"splitpay/internal/utils/cache"

	"github.com/sirupsen/logrus"
)

type service struct {
	cfg        Config
	encoder    *Encoder
	renderer   Renderer
	recipients RecipientLookup
	cache      ImageCache
	metrics    MetricsCollector
	log        *logrus.Entry
}

// NewService creates a PayNow service. recipients, cache, metrics and logger
// may be nil.
func NewService(cfg Config, renderer Renderer, recipients RecipientLookup,
	imageCache ImageCache, metrics MetricsCollector, logger *logrus.Logger) Service {
	if renderer == nil {
		panic("renderer is required")
	}
	if imageCache == nil {
		imageCache = NoopImageCache{}
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &service{
		cfg:        cfg,
		encoder:    NewEncoder(EncoderOptions{AmountEditable: cfg.AmountEditable}),
		renderer:   renderer,
		recipients: recipients,
		cache:      imageCache,
		metrics:    metrics,
		log:        logger.WithField("component", "paynow"),
	}
}

func (s *service) GeneratePayload(ctx context.Context, req GenerateRequest) (*Result, error) {
	defer s.timed("generate_payload")()

	recipient, err := s.resolveRecipient(ctx, req)
	if err != nil {
		s.metrics.RecordError("generate_payload", appErrors.Code(err))
		return nil, err
	}

	payReq := domain.PaymentRequest{
		RecipientType: recipient.Type,
		RecipientID:   recipient.ID,
		RecipientName: recipient.Name,
		Amount:        req.Amount,
		Reference:     BuildReference(req.Reference, req.PersonName),
		ExpiryDate:    firstNonEmpty(req.ExpiryDate, s.cfg.ExpiryDate),
		BrandColour:   firstNonEmpty(req.BrandColour, s.cfg.BrandColour),
	}.Normalize()

	payload, err := s.encoder.Encode(payReq)
	if err != nil {
		s.metrics.RecordError("generate_payload", appErrors.Code(err))
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"amount":    payReq.FormattedAmount(),
		"reference": payReq.Reference,
	}).Debug("payload generated")

	return &Result{Payload: payload, Request: payReq, PayTo: recipient.Display}, nil
}

func (s *service) GenerateQR(ctx context.Context, req GenerateRequest) (*Result, error) {
	res, err := s.GeneratePayload(ctx, req)
	if err != nil {
		return nil, err
	}

	defer s.timed("render")()

	key := imageKey(res.Payload, res.Request.BrandColour)
	if img, ok, err := s.cache.GetImage(ctx, key); err != nil {
		s.log.WithError(err).Warn("image cache read failed")
	} else if ok {
		s.metrics.RecordCacheHit(key)
		res.Image = img
		return res, nil
	}
	s.metrics.RecordCacheMiss(key)

	img, err := s.renderer.Render(res.Payload, res.Request.BrandColour)
	if err != nil {
		s.metrics.RecordError("render", appErrors.Code(err))
		return nil, err
	}
	res.Image = img

	if err := s.cache.SetImage(ctx, key, img); err != nil {
		s.log.WithError(err).Warn("image cache write failed")
	}
	return res, nil
}

func (s *service) Decode(ctx context.Context, payload string) (*Payload, error) {
	defer s.timed("decode")()

	p, err := Decode(payload)
	if err != nil {
		s.metrics.RecordError("decode", appErrors.Code(err))
		return nil, err
	}
	return p, nil
}

func (s *service) resolveRecipient(ctx context.Context, req GenerateRequest) (Recipient, error) {
	if req.Recipient != nil {
		r := *req.Recipient
		if r.Display == "" {
			r.Display = strings.TrimSpace(r.ID)
		}
		if r.Type == "" {
			r.Type = domain.RecipientMobile
		}
		if r.Type == domain.RecipientMobile {
			r.ID = domain.NormalizeMobile(r.ID)
		}
		return r, nil
	}

	if req.UserID != "" && s.recipients != nil {
		stored, err := s.recipients.Get(ctx, req.UserID)
		switch {
		case err == nil:
			return Recipient{
				Type: domain.RecipientMobile,
				ID:      domain.NormalizeMobile(stored.Phone),
				Name:    stored.Name,
				Display: stored.Phone,
			}, nil
		case errors.Is(err, appErrors.ErrRecipientNotFound):
			s.log.WithField("user_id", req.UserID).Debug("no stored recipient, using default")
		default:
			return Recipient{}, fmt.Errorf("failed to load recipient: %w", err)
		}
	}

	if s.cfg.RecipientPhone == "" || s.cfg.RecipientName == "" {
		return Recipient{}, appErrors.ErrRecipientNotConfigured
	}
	return Recipient{
		Type: domain.RecipientMobile,
		ID:      domain.NormalizeMobile(s.cfg.RecipientPhone),
		Name:    s.cfg.RecipientName,
		Display: s.cfg.RecipientPhone,
	}, nil
}

func (s *service) timed(op string) func() {
	start := time.Now()
	return func() {
		s.metrics.RecordOperationDuration(op, time.Since(start))
	}
}

// BuildReference combines a bill reference and a diner's name into the
// payload reference: "ref - name", either alone, or DefaultReference.
// The result is cut to the reference limit.
func BuildReference(reference, personName string) string {
	var ref string
	switch {
	case reference != "" && personName != "":
		ref = reference + " - " + personName
	case personName != "":
		ref = personName
	default:
		ref = reference
	}

	ref = domain.TruncateBytes(ref, domain.MaxReferenceLength)
	if ref == "" {
		return DefaultReference
	}
	return ref
}

func imageKey(payload, colour string) string {
	sum := sha256.Sum256([]byte(colour + "|" + payload))
	return cache.Key(cache.EntityPayNowImage, cache.KindPayload, hex.EncodeToString(sum[:]))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
