package consts

const (
	ApplicationName    = "Portal Berita Server"
	ApplicationVersion = "v1.4.0"
)
