package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDir 返回数据目录（cookie、黑名单、简历图片等落盘位置），不存在时创建
func DataDir() (string, error) {
	root, err := projectRoot()
	if err != nil {
		root = "."
	}
	dir := filepath.Join(root, "data")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("创建数据目录失败: %w", err)
	}
	return dir, nil
}

// projectRoot 从工作目录向上查找包含go.mod的目录
func projectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("未找到go.mod文件")
		}
		dir = parent
	}
}
