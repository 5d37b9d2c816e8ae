// Package remote 实现 SSH/SFTP 远端文件传输原语：会话生命周期管理、
// 远端目录物化、单文件流式上传、目录树递归删除。
// 会话由调用方显式持有并传入每个操作，没有进程级全局状态。
package remote

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

const (
	// DefaultPort SSH 默认端口
	DefaultPort = 22

	// DefaultDialTimeout 建连与握手阶段的超时
	DefaultDialTimeout = 10 * time.Second
)

// State 会话状态机：Connecting → HandshakeDone → Authenticated →
// SubsessionReady → Closed。Closed 之后的会话不可再使用。
type State int

const (
	StateConnecting State = iota
	StateHandshakeDone
	StateAuthenticated
	StateSubsessionReady
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateHandshakeDone:
		return "handshake-done"
	case StateAuthenticated:
		return "authenticated"
	case StateSubsessionReady:
		return "subsession-ready"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Session 一条已建立的 SSH 连接及其上的 SFTP 子会话。
// 同一时刻只服务一个操作，并发使用需要调用方自行互斥。
type Session struct {
	hostname string
	port     int
	user     string

	conn       net.Conn
	sshClient  *ssh.Client
	sftpClient *sftp.Client
	files      FileSystem
	state      State
}

// Connect 建立传输连接、完成握手与认证（key 或 password 二选一，由
// auth 决定）、打开 SFTP 子会话。任一阶段失败都会中止并在错误中标明
// 失败阶段：ErrTransport / ErrHandshake / ErrAuth / ErrSubsessionInit。
func Connect(hostname string, port int, user string, auth []ssh.AuthMethod) (*Session, error) {
	s := &Session{
		hostname: hostname,
		port:     port,
		user:     user,
		state:    StateConnecting,
	}

	addr := net.JoinHostPort(hostname, fmt.Sprintf("%d", port))
	conn, err := net.DialTimeout("tcp", addr, DefaultDialTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: 连接 %s 失败: %v", ErrTransport, addr, err)
	}
	s.conn = conn

	config := &ssh.ClientConfig{
		User:            user,
		Auth:            auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         DefaultDialTimeout,
	}

	// 自己持有裸连接以便存活探测轮询描述符，握手阶段用连接级超时兜底
	_ = conn.SetDeadline(time.Now().Add(DefaultDialTimeout))
	clientConn, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		conn.Close()
		if strings.Contains(err.Error(), "unable to authenticate") {
			return nil, fmt.Errorf("%w: %s@%s: %v", ErrAuth, user, addr, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrHandshake, addr, err)
	}
	_ = conn.SetDeadline(time.Time{})
	s.state = StateHandshakeDone
	s.sshClient = ssh.NewClient(clientConn, chans, reqs)
	s.state = StateAuthenticated

	sftpClient, err := sftp.NewClient(s.sshClient)
	if err != nil {
		s.sshClient.Close()
		return nil, fmt.Errorf("%w: %v", ErrSubsessionInit, err)
	}
	s.sftpClient = sftpClient
	s.files = &sftpFS{client: sftpClient}
	s.state = StateSubsessionReady

	return s, nil
}

// Hostname 返回会话连接的主机名
func (s *Session) Hostname() string { return s.hostname }

// User 返回认证身份
func (s *Session) User() string { return s.user }

// State 返回当前会话状态
func (s *Session) State() State { return s.state }

// IsAlive 非阻塞探测底层传输是否仍可用，不做任何协议 I/O。
// 以零超时轮询传输描述符，对端关闭、描述符失效或轮询报错都判定为失活；
// 已关闭的会话直接返回 false。探测本身永不阻塞。
func (s *Session) IsAlive() bool {
	if s == nil || s.state != StateSubsessionReady || s.conn == nil {
		return false
	}
	return probeConn(s.conn)
}

// Upload 在本会话上执行单文件上传，见 Upload 函数
func (s *Session) Upload(localPath, remotePath string) error {
	if s.state != StateSubsessionReady {
		return ErrSessionClosed
	}
	return Upload(s.files, localPath, remotePath)
}

// RemovePath 在本会话上递归删除远端路径，见 RemovePath 函数
func (s *Session) RemovePath(remotePath string) error {
	if s.state != StateSubsessionReady {
		return ErrSessionClosed
	}
	return RemovePath(s.files, remotePath)
}

// EnsureDirectory 在本会话上物化远端目录，见 EnsureDirectory 函数
func (s *Session) EnsureDirectory(remotePath string) error {
	if s.state != StateSubsessionReady {
		return ErrSessionClosed
	}
	return EnsureDirectory(s.files, remotePath)
}

// Files 返回子会话的文件系统能力，会话已关闭时返回 ErrSessionClosed
func (s *Session) Files() (FileSystem, error) {
	if s.state != StateSubsessionReady || s.files == nil {
		return nil, ErrSessionClosed
	}
	return s.files, nil
}

// Close 按固定顺序拆除会话：先关闭 SFTP 子会话，再断开 SSH 连接，
// 最后释放传输描述符。x/crypto/ssh 的 Close 会随连接一并关闭底层
// net.Conn，不单独重复释放。重复调用是安全的空操作。
func (s *Session) Close() error {
	if s == nil || s.state == StateClosed {
		return nil
	}

	var firstErr error

	if s.sftpClient != nil {
		if err := s.sftpClient.Close(); err != nil {
			firstErr = fmt.Errorf("关闭 SFTP 子会话失败: %w", err)
		}
		s.sftpClient = nil
		s.files = nil
	}

	if s.sshClient != nil {
		if err := s.sshClient.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("断开 SSH 连接失败: %w", err)
		}
		s.sshClient = nil
		s.conn = nil
	} else if s.conn != nil {
		if err := s.conn.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("释放传输连接失败: %w", err)
		}
		s.conn = nil
	}

	s.state = StateClosed
	return firstErr
}
