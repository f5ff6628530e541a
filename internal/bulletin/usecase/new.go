package usecase

import (
	"engineering-sync/internal/auth"
	"engineering-sync/internal/bulletin"
	"engineering-sync/internal/cache"
	"engineering-sync/internal/mailer"
	"engineering-sync/internal/narrative"
	"engineering-sync/internal/subscription"
	pkgLog "engineering-sync/pkg/log"
)

// BroadcastConfig carries the delivery-side settings for one deployment.
type BroadcastConfig struct {
	// BaseURL is the public origin used to build manage/unsubscribe links.
	BaseURL string
	// ExtraRecipients is a comma-separated list merged with the user store.
	ExtraRecipients string
	// SenderEmail is excluded from personalized delivery.
	SenderEmail string
}

type implUseCase struct {
	l      pkgLog.Logger
	api    bulletin.Fetcher
	cache  *cache.Store
	synth  narrative.Synthesizer
	repo   subscription.Repository
	sender mailer.Sender
	tokens *auth.Manager
	cfg    BroadcastConfig
}

// New creates a new bulletin UseCase instance. repo, sender, and tokens may
// be nil for enrichment-only deployments; Broadcast requires all three.
func New(
	l pkgLog.Logger,
	api bulletin.Fetcher,
	store *cache.Store,
	synth narrative.Synthesizer,
	repo subscription.Repository,
	sender mailer.Sender,
	tokens *auth.Manager,
	cfg BroadcastConfig,
) *implUseCase {
	return &implUseCase{
		l:      l,
		api:    api,
		cache:  store,
		synth:  synth,
		repo:   repo,
		sender: sender,
		tokens: tokens,
		cfg:    cfg,
	}
}
