//go:build !android

package utils

// EnsureStorageDir 桌面平台无需预先创建目录
// gdata 会在首次保存时自行创建设置目录
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 桌面平台由 gdata 决定路径，这里返回空字符串
func GetStoragePath() string {
	return ""
}
