package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ Registry            = (*PlatformRegistry)(nil)
	_ HealthManager       = (*Service)(nil)
	_ PermissionEvaluator = GrantPermissionEvaluator{}

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
