package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// 固定的本地状态键
const (
	KeyToken  = "aquanotes_admin_token"
	KeyAPIKey = "aquanotes_admin_api_key"
	KeyTheme  = "aquanotes_admin_theme"
)

// FileStore 本地状态存储：一个键一个文件，进程重启后仍然可读。
// 只用于 token / admin api key / theme 三个标量，不缓存实体数据。
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Get 读取键值；键不存在返回 ErrMiss
func (f *FileStore) Get(key string) (string, error) {
	raw, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrMiss
		}
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// Set 写入键值；空值等价于 Delete
func (f *FileStore) Set(key, value string) error {
	if value == "" {
		return f.Delete(key)
	}
	return os.WriteFile(f.path(key), []byte(value), 0o600)
}

func (f *FileStore) Delete(key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key)
}
