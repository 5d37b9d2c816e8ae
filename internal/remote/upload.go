package remote

// upload.go 单文件上传：先物化远端父目录，再经固定大小缓冲区流式写入，
// 内存占用与文件大小无关。

import (
	"fmt"
	"io"
	"os"
	"path"
)

const (
	// UploadChunkSize 上传缓冲区大小
	UploadChunkSize = 32 * 1024

	// FileMode 上传文件使用的固定权限位（属主读写）
	FileMode os.FileMode = 0600
)

// Upload 把一个本地文件上传为一个远端文件，整体覆盖，不支持续传。
// 本地路径是目录时直接拒绝，不产生任何远端副作用。
// 中途失败时所有已打开的句柄都会释放，但远端可能残留被截断的部分文件，
// 不做自动清理，由调用方决定是否重新上传。
func Upload(fsys FileSystem, localPath, remotePath string) error {
	if info, err := os.Stat(localPath); err == nil && info.IsDir() {
		return fmt.Errorf("%w: %s", ErrIsDirectory, localPath)
	}

	dir := path.Dir(remotePath)
	if err := EnsureDirectory(fsys, dir); err != nil {
		return fmt.Errorf("物化远端父目录 %s 失败: %w", dir, err)
	}

	dst, err := fsys.OpenFile(remotePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return fmt.Errorf("打开远端文件 %s 失败: %w", remotePath, err)
	}

	if err := fsys.Chmod(remotePath, FileMode); err != nil {
		dst.Close()
		return fmt.Errorf("设置远端文件 %s 权限失败: %w", remotePath, err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		dst.Close()
		return fmt.Errorf("打开本地文件 %s 失败: %w", localPath, err)
	}

	if err := copyChunks(dst, src); err != nil {
		src.Close()
		dst.Close()
		return fmt.Errorf("传输 %s 到 %s 失败: %w", localPath, remotePath, err)
	}

	if err := src.Close(); err != nil {
		dst.Close()
		return fmt.Errorf("关闭本地文件 %s 失败: %w", localPath, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("关闭远端文件 %s 失败: %w", remotePath, err)
	}
	return nil
}

// copyChunks 以固定缓冲区搬运数据。传输层可能出现短写，
// 对每个读到的数据块反复写入直到全部落盘。
func copyChunks(dst io.Writer, src io.Reader) error {
	buf := make([]byte, UploadChunkSize)
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			for len(chunk) > 0 {
				written, werr := dst.Write(chunk)
				if werr != nil {
					return werr
				}
				if written <= 0 {
					return io.ErrShortWrite
				}
				chunk = chunk[written:]
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return rerr
		}
	}
}
