package remote

// remove.go 递归删除远端文件或目录树：深度优先后序遍历，遇错即停。

import (
	"fmt"
	"os"
)

// RemovePath 删除远端路径指向的文件或整棵目录树。
// 路径本身不存在视为成功（删除已不存在的东西不是错误）。
// 任一子项删除失败立即中止并向上传播，不跨兄弟节点尽力继续；
// 已删除的部分不回滚，重试时这些子项按不存在跳过，因此整个操作可安全重试。
func RemovePath(fsys FileSystem, remotePath string) error {
	if _, err := fsys.Stat(remotePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("检查远端路径 %s 失败: %w", remotePath, err)
	}

	// 先按普通文件尝试删除
	if err := fsys.Remove(remotePath); err == nil {
		return nil
	}

	entries, err := fsys.ReadDir(remotePath)
	if err != nil {
		// 打不开目录列表时按空目录直接删，覆盖可删除但不可列出的目录项
		if rmErr := fsys.RemoveDirectory(remotePath); rmErr == nil {
			return nil
		}
		return fmt.Errorf("打开或删除远端路径 %s 失败: %w", remotePath, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if name == "." || name == ".." {
			continue
		}

		child, err := joinRemote(remotePath, name)
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if err := RemovePath(fsys, child); err != nil {
				return err
			}
		} else if err := fsys.Remove(child); err != nil {
			return fmt.Errorf("删除远端文件 %s 失败: %w", child, err)
		}
	}

	// 子项清空后删除目录本身
	if err := fsys.RemoveDirectory(remotePath); err != nil {
		return fmt.Errorf("删除远端目录 %s 失败: %w", remotePath, err)
	}
	return nil
}
