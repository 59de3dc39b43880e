package sqlstore

import "github.com/goliatone/go-health/core"

var (
	_ core.Platform               = (*Platform)(nil)
	_ core.NativeAggregator       = (*Platform)(nil)
	_ core.Revoker                = (*Platform)(nil)
	_ core.AuthorizationPresenter = (*Platform)(nil)
)
