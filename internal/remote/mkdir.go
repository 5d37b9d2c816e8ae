package remote

// mkdir.go 远端目录物化：从左到右逐级创建缺失的祖先目录。

import (
	"fmt"
	"os"
	"path"
)

// DirMode 物化目录使用的固定权限位（属主读写执行）
const DirMode os.FileMode = 0700

// EnsureDirectory 确保远端目录及其所有祖先存在。
// 对每个累积前缀 stat 一次：已是目录则跳过；被非目录条目占用则返回
// ErrPathConflict 并立即停止，不再尝试后续组件；不存在则创建。
// 左到右的顺序保证父目录先于子目录创建。重复调用幂等。
func EnsureDirectory(fsys FileSystem, remotePath string) error {
	// 整条路径已是目录时无需逐级检查
	if info, err := fsys.Stat(remotePath); err == nil && info.IsDir() {
		return nil
	}

	components, absolute := splitRemotePath(remotePath)
	current := ""
	if absolute {
		current = "/"
	}

	for _, comp := range components {
		current = path.Join(current, comp)

		info, err := fsys.Stat(current)
		switch {
		case err == nil && info.IsDir():
			continue
		case err == nil:
			return fmt.Errorf("%w: %s", ErrPathConflict, current)
		case os.IsNotExist(err):
			if err := fsys.Mkdir(current); err != nil {
				return fmt.Errorf("创建远端目录 %s 失败: %w", current, err)
			}
			if err := fsys.Chmod(current, DirMode); err != nil {
				return fmt.Errorf("设置远端目录 %s 权限失败: %w", current, err)
			}
		default:
			return fmt.Errorf("检查远端路径 %s 失败: %w", current, err)
		}
	}

	return nil
}
