package remote

import (
	"io"
	"os"

	"github.com/pkg/sftp"
)

// FileSystem 抽象 SFTP 子会话提供的文件系统能力，支持 mock 测试。
// 路径不存在统一通过 os.IsNotExist 判定。
type FileSystem interface {
	Stat(path string) (os.FileInfo, error)
	Mkdir(path string) error
	Chmod(path string, mode os.FileMode) error
	OpenFile(path string, flags int) (RemoteFile, error)
	ReadDir(path string) ([]os.FileInfo, error)
	Remove(path string) error
	RemoveDirectory(path string) error
}

// RemoteFile 已打开的远端文件句柄，用完必须关闭
type RemoteFile interface {
	io.WriteCloser
}

// sftpFS 基于 pkg/sftp 的真实实现
type sftpFS struct {
	client *sftp.Client
}

func (f *sftpFS) Stat(path string) (os.FileInfo, error) {
	return f.client.Stat(path)
}

func (f *sftpFS) Mkdir(path string) error {
	return f.client.Mkdir(path)
}

func (f *sftpFS) Chmod(path string, mode os.FileMode) error {
	return f.client.Chmod(path, mode)
}

func (f *sftpFS) OpenFile(path string, flags int) (RemoteFile, error) {
	return f.client.OpenFile(path, flags)
}

func (f *sftpFS) ReadDir(path string) ([]os.FileInfo, error) {
	return f.client.ReadDir(path)
}

func (f *sftpFS) Remove(path string) error {
	return f.client.Remove(path)
}

func (f *sftpFS) RemoveDirectory(path string) error {
	return f.client.RemoveDirectory(path)
}
