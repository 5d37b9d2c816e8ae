package remote

// fs_fake_test.go 测试用内存文件系统：以规范化路径为键维护节点表，
// 支持对任意路径注入各操作的错误、模拟传输层短写，并统计句柄开闭
// 以便断言所有出错分支都不泄漏句柄。

import (
	"errors"
	"os"
	"path"
	"sort"
	"time"
)

type fakeNode struct {
	dir     bool
	mode    os.FileMode
	content []byte
}

type fakeFS struct {
	nodes map[string]*fakeNode

	statErr    map[string]error
	mkdirErr   map[string]error
	openErr    map[string]error
	readDirErr map[string]error
	removeErr  map[string]error
	rmdirErr   map[string]error

	mkdirCalls []string

	// writeLimit > 0 时每次 Write 最多写入该字节数，模拟短写
	writeLimit int
	// writeErr 非空时，第 failAfterWrites+1 次 Write 返回该错误
	writeErr        error
	failAfterWrites int

	openHandles int
	writeCalls  int
}

func newFakeFS() *fakeFS {
	return &fakeFS{
		nodes: map[string]*fakeNode{
			"/": {dir: true, mode: 0755},
			".": {dir: true, mode: 0755},
		},
		statErr:    map[string]error{},
		mkdirErr:   map[string]error{},
		openErr:    map[string]error{},
		readDirErr: map[string]error{},
		removeErr:  map[string]error{},
		rmdirErr:   map[string]error{},
	}
}

func (f *fakeFS) key(p string) string { return path.Clean(p) }

// addDir / addFile 测试场景搭建用，不做父目录检查
func (f *fakeFS) addDir(p string) {
	f.nodes[f.key(p)] = &fakeNode{dir: true, mode: 0755}
}

func (f *fakeFS) addFile(p string, content []byte) {
	f.nodes[f.key(p)] = &fakeNode{mode: 0644, content: append([]byte(nil), content...)}
}

func (f *fakeFS) has(p string) bool {
	_, ok := f.nodes[f.key(p)]
	return ok
}

func notExist(op, p string) error {
	return &os.PathError{Op: op, Path: p, Err: os.ErrNotExist}
}

func (f *fakeFS) Stat(p string) (os.FileInfo, error) {
	p = f.key(p)
	if err := f.statErr[p]; err != nil {
		return nil, err
	}
	node, ok := f.nodes[p]
	if !ok {
		return nil, notExist("stat", p)
	}
	return &fakeInfo{name: path.Base(p), node: node}, nil
}

func (f *fakeFS) Mkdir(p string) error {
	p = f.key(p)
	f.mkdirCalls = append(f.mkdirCalls, p)
	if err := f.mkdirErr[p]; err != nil {
		return err
	}
	if _, ok := f.nodes[p]; ok {
		return &os.PathError{Op: "mkdir", Path: p, Err: os.ErrExist}
	}
	parent, ok := f.nodes[path.Dir(p)]
	if !ok || !parent.dir {
		return notExist("mkdir", p)
	}
	f.nodes[p] = &fakeNode{dir: true, mode: 0755}
	return nil
}

func (f *fakeFS) Chmod(p string, mode os.FileMode) error {
	p = f.key(p)
	node, ok := f.nodes[p]
	if !ok {
		return notExist("chmod", p)
	}
	node.mode = mode
	return nil
}

func (f *fakeFS) OpenFile(p string, flags int) (RemoteFile, error) {
	p = f.key(p)
	if err := f.openErr[p]; err != nil {
		return nil, err
	}
	node, ok := f.nodes[p]
	if ok && node.dir {
		return nil, &os.PathError{Op: "open", Path: p, Err: errors.New("is a directory")}
	}
	if !ok {
		if flags&os.O_CREATE == 0 {
			return nil, notExist("open", p)
		}
		node = &fakeNode{mode: 0644}
		f.nodes[p] = node
	}
	if flags&os.O_TRUNC != 0 {
		node.content = nil
	}
	f.openHandles++
	return &fakeFile{fs: f, node: node}, nil
}

func (f *fakeFS) ReadDir(p string) ([]os.FileInfo, error) {
	p = f.key(p)
	if err := f.readDirErr[p]; err != nil {
		return nil, err
	}
	node, ok := f.nodes[p]
	if !ok {
		return nil, notExist("readdir", p)
	}
	if !node.dir {
		return nil, &os.PathError{Op: "readdir", Path: p, Err: errors.New("not a directory")}
	}

	var names []string
	for k := range f.nodes {
		if k != p && path.Dir(k) == p {
			names = append(names, path.Base(k))
		}
	}
	sort.Strings(names)

	// 远端服务器的目录列举带有 "." 和 ".."
	dot := &fakeNode{dir: true, mode: 0755}
	infos := []os.FileInfo{
		&fakeInfo{name: ".", node: dot},
		&fakeInfo{name: "..", node: dot},
	}
	for _, name := range names {
		child := f.nodes[f.key(path.Join(p, name))]
		infos = append(infos, &fakeInfo{name: name, node: child})
	}
	return infos, nil
}

func (f *fakeFS) Remove(p string) error {
	p = f.key(p)
	if err := f.removeErr[p]; err != nil {
		return err
	}
	node, ok := f.nodes[p]
	if !ok {
		return notExist("remove", p)
	}
	if node.dir {
		return &os.PathError{Op: "remove", Path: p, Err: errors.New("is a directory")}
	}
	delete(f.nodes, p)
	return nil
}

func (f *fakeFS) RemoveDirectory(p string) error {
	p = f.key(p)
	if err := f.rmdirErr[p]; err != nil {
		return err
	}
	node, ok := f.nodes[p]
	if !ok {
		return notExist("rmdir", p)
	}
	if !node.dir {
		return &os.PathError{Op: "rmdir", Path: p, Err: errors.New("not a directory")}
	}
	for k := range f.nodes {
		if k != p && path.Dir(k) == p {
			return &os.PathError{Op: "rmdir", Path: p, Err: errors.New("directory not empty")}
		}
	}
	delete(f.nodes, p)
	return nil
}

type fakeFile struct {
	fs     *fakeFS
	node   *fakeNode
	closed bool
}

func (f *fakeFile) Write(p []byte) (int, error) {
	if f.closed {
		return 0, errors.New("write on closed file")
	}
	if f.fs.writeErr != nil && f.fs.writeCalls >= f.fs.failAfterWrites {
		return 0, f.fs.writeErr
	}
	f.fs.writeCalls++

	chunk := p
	if f.fs.writeLimit > 0 && len(chunk) > f.fs.writeLimit {
		chunk = p[:f.fs.writeLimit]
	}
	f.node.content = append(f.node.content, chunk...)
	return len(chunk), nil
}

func (f *fakeFile) Close() error {
	if f.closed {
		return errors.New("close on closed file")
	}
	f.closed = true
	f.fs.openHandles--
	return nil
}

type fakeInfo struct {
	name string
	node *fakeNode
}

func (i *fakeInfo) Name() string { return i.name }
func (i *fakeInfo) Size() int64  { return int64(len(i.node.content)) }
func (i *fakeInfo) Mode() os.FileMode {
	if i.node.dir {
		return i.node.mode | os.ModeDir
	}
	return i.node.mode
}
func (i *fakeInfo) ModTime() time.Time { return time.Time{} }
func (i *fakeInfo) IsDir() bool        { return i.node.dir }
func (i *fakeInfo) Sys() any           { return nil }
