package utils

import (
	"net/mail"
	"regexp"
	"strings"
)

var (
	usernamePattern  = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	pureNumber       = regexp.MustCompile(`^[0-9]+$`)
	passwordCharset  = regexp.MustCompile(`^[a-zA-Z0-9[:punct:]]+$`)
	hasLetterPattern = regexp.MustCompile(`[a-zA-Z]`)
	hasNumberPattern = regexp.MustCompile(`[0-9]`)
	imageLinkPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp)$`)
)

var reservedUsernames = map[string]struct{}{
	"admin":         {},
	"root":          {},
	"system":        {},
	"administrator": {},
}

// ValidateUsername 用户名 4-20 位，仅英文大小写、数字和下划线
func ValidateUsername(username string) (bool, string) {
	if len(username) < 4 || len(username) > 20 {
		return false, "用户名长度必须在 4 到 20 位之间"
	}
	if !usernamePattern.MatchString(username) {
		return false, "用户名只能包含英文大小写、数字和下划线"
	}
	if pureNumber.MatchString(username) {
		return false, "用户名不能为纯数字"
	}
	if _, reserved := reservedUsernames[strings.ToLower(username)]; reserved {
		return false, "该用户名为系统保留用户名"
	}
	return true, ""
}

// ValidatePassword checks if the password meets the requirements.
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "密码最少8位"
	}
	if len(password) > 64 {
		return false, "密码最多64位"
	}
	if !passwordCharset.MatchString(password) {
		return false, "密码只能包含英文大小写、数字和符号"
	}
	if !hasLetterPattern.MatchString(password) || !hasNumberPattern.MatchString(password) {
		return false, "密码必须包含至少一个字母和一个数字"
	}
	return true, ""
}

func ValidateEmail(email string) (bool, string) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false, "邮箱格式不正确"
	}
	return true, ""
}

// IsImageLink 文章封面链接必须以图片扩展名结尾
func IsImageLink(link string) bool {
	return imageLinkPattern.MatchString(strings.TrimSpace(link))
}
