package respond

import (
	"regexp"
)

var (
	// SendGrid API キー (SG.<id>.<secret>)
	sendgridKeyPattern = regexp.MustCompile(`SG\.[A-Za-z0-9_-]{8,}\.[A-Za-z0-9_-]{8,}`)
	// Blob ストアの読み書きトークン
	blobTokenPattern = regexp.MustCompile(`vercel_blob_rw_[A-Za-z0-9_]+`)
	// Authorization ヘッダーの値
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._~+/=-]+`)

	// DSN 内のパスワード (postgres://user:pass@, redis://:pass@)
	dsnPasswordPattern = regexp.MustCompile(`://([^:/@]*):([^@]+)@`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = sendgridKeyPattern.ReplaceAllString(msg, "SG.****")
	msg = blobTokenPattern.ReplaceAllString(msg, "vercel_blob_rw_****")
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	return msg
}
