package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[WriteRecordsMessage]         = (*WriteRecordsCommand)(nil)
	_ gocmd.Commander[RequestAuthorizationMessage] = (*RequestAuthorizationCommand)(nil)
	_ gocmd.Commander[RevokeAuthorizationMessage]  = (*RevokeAuthorizationCommand)(nil)
	_ gocmd.Commander[MirrorMessage]               = (*MirrorCommand)(nil)
)
