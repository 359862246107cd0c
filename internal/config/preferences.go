package config

import (
	"sync"

	"go.uber.org/zap"

	"filegrip/internal/eventbus"
	"filegrip/internal/logging"
)

// PreferenceSaver writes ConfigChangedEvents to the config file one at a
// time. A change older than the last one saved is ignored.
type PreferenceSaver struct {
	mu      sync.Mutex
	svc     ConfigService
	cfg     *Config
	lastSeq uint64
}

// NewPreferenceSaver saves into cfg through svc. cfg must not be written elsewhere afterwards.
func NewPreferenceSaver(svc ConfigService, cfg *Config) *PreferenceSaver {
	return &PreferenceSaver{svc: svc, cfg: cfg}
}

// Handle is an eventbus handler for EventConfigChanged
func (p *PreferenceSaver) Handle(e eventbus.DomainEvent) {
	changed, ok := e.(eventbus.ConfigChangedEvent)
	if !ok {
		return
	}
	if _, err := p.Apply(changed); err != nil {
		logging.Warn("failed to save config", zap.String("path", p.svc.Path()), zap.Error(err))
	}
}

// Apply copies changed into the config and saves it. It reports whether
// the file was written.
func (p *PreferenceSaver) Apply(changed eventbus.ConfigChangedEvent) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if changed.Seq != 0 {
		if changed.Seq <= p.lastSeq {
			logging.Debug("skipping outdated preferences", zap.Uint64("seq", changed.Seq), zap.Uint64("saved", p.lastSeq))
			return false, nil
		}
		p.lastSeq = changed.Seq
	}
	p.cfg.ApplyPreferences(changed)
	if err := p.svc.Save(p.cfg); err != nil {
		return false, err
	}
	return true, nil
}
