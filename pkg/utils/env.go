package utils

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// 环境变量名
const (
	EnvConfigPath = "BACKDROP_CONFIG"
	EnvVerbose    = "BACKDROP_VERBOSE"
	EnvSeed       = "BACKDROP_SEED"
)

// LoadEnv 从 .env 文件加载环境变量（不覆盖已存在的变量）
//
// 未指定文件时读取当前目录的 .env。文件不存在不算错误。
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		log.Printf("[Env] Loaded %s", f)
	}
	return nil
}

// EnvString 返回环境变量值，未设置或为空时返回 def
func EnvString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// EnvBool 解析布尔环境变量（1/true/yes/on），无法解析时返回 def
func EnvBool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch v {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	log.Printf("[Env] Invalid boolean %s=%q, using %v", key, v, def)
	return def
}

// EnvInt64 解析整数环境变量，无法解析时返回 def
func EnvInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("[Env] Invalid integer %s=%q, using %d", key, v, def)
		return def
	}
	return n
}
