package handler

type ContextKey string

var (
	RoleCtxKey   ContextKey = "role"
	SubCtxKey    ContextKey = "sub"
	MyInfoCtx    ContextKey = "myInfo"
	UserInfoCtx  ContextKey = "userInfo"
	SessionCtx   ContextKey = "session"
	FlowCtx      ContextKey = "flow"
	WorkspaceCtx ContextKey = "workspace"
)
