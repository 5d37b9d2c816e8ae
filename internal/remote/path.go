package remote

// path.go 远端路径处理。远端路径以 / 分隔，统一经 path 包规范化，
// 拼接前校验子项名称合法性。

import (
	"fmt"
	"path"
	"strings"
)

// splitRemotePath 把远端路径规范化后拆成有序组件，并返回是否绝对路径。
// "." 和空组件被丢弃；"/" 和 "." 拆出空组件表。
func splitRemotePath(p string) (components []string, absolute bool) {
	clean := path.Clean(p)
	absolute = strings.HasPrefix(clean, "/")
	for _, c := range strings.Split(clean, "/") {
		if c == "" || c == "." {
			continue
		}
		components = append(components, c)
	}
	return components, absolute
}

// joinRemote 拼接远端目录与单个子项名称。
// 子项名称不能为空、不能是 "." 或 ".."、不能含分隔符。
func joinRemote(dir, name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return "", fmt.Errorf("非法的远端目录项名称: %q", name)
	}
	return path.Join(dir, name), nil
}
