package market

import (
	"go.uber.org/zap"

	"github.com/etfarb/arbscan/internal/plugin"
)

// NewRegistry builds a plugin.Registry[Profile] pre-populated with "cn"
// (fully implemented) and the "hk"/"us" placeholders, so callers can
// discover supported-vs-placeholder markets by name the same way every
// other pluggable role in the engine is discovered.
func NewRegistry(logger *zap.Logger) *plugin.Registry[Profile] {
	reg := plugin.New[Profile]("market-profiles", logger)

	_ = reg.Register("cn", func(map[string]any) (Profile, error) {
		return CNProfile{}, nil
	}, 100, "A-share limit-up and session rules", "1.0.0")

	_ = reg.Register("hk", func(map[string]any) (Profile, error) {
		return HKProfile(), nil
	}, 10, "Hong Kong equities, framework placeholder", "0.1.0")

	_ = reg.Register("us", func(map[string]any) (Profile, error) {
		return USProfile(), nil
	}, 10, "US equities, framework placeholder", "0.1.0")

	return reg
}
