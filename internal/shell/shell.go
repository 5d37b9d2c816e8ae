// Package shell 实现交互式命令循环。每条命令的结果输出为单行
// `<status>|<message>`，status 为 1 表示成功、0 表示失败。
// 识别的命令：upload <local> <remote>、remove <remote>、exit。
package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/hwuu/sftpsh/internal/config"
)

const commandPrompt = "Command (upload <local> <remote> | remove <remote> | exit): "

// Session shell 所需的会话能力集，由 remote.Session 实现，支持 mock 测试
type Session interface {
	Hostname() string
	User() string
	IsAlive() bool
	Upload(localPath, remotePath string) error
	RemovePath(remotePath string) error
}

// Shell 绑定一个已建立的会话，驱动命令循环
type Shell struct {
	session  Session
	prompter *config.Prompter
	out      io.Writer
}

// New 创建 Shell。prompter 与 out 注入以便测试。
func New(session Session, prompter *config.Prompter, out io.Writer) *Shell {
	return &Shell{session: session, prompter: prompter, out: out}
}

func (s *Shell) ok(format string, args ...any) {
	fmt.Fprintf(s.out, "1|"+format+"\n", args...)
}

func (s *Shell) fail(format string, args ...any) {
	fmt.Fprintf(s.out, "0|"+format+"\n", args...)
}

// Run 执行命令循环，直到 exit、输入耗尽或会话失活。
// 每轮先做存活探测，失活时输出一条失败行并结束循环，不尝试重连。
func (s *Shell) Run() error {
	s.ok("Connected to %s as %s", s.session.Hostname(), s.session.User())

	for {
		if !s.session.IsAlive() {
			s.fail("SFTP session lost")
			return nil
		}

		line, err := s.prompter.Prompt(commandPrompt)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			s.fail("Failed to read input")
			return err
		}

		fields := strings.Fields(line)
		command := ""
		if len(fields) > 0 {
			command = fields[0]
		}

		switch {
		case command == "exit":
			s.ok("Exiting shell")
			return nil

		case command == "upload" && len(fields) == 3:
			if err := s.session.Upload(fields[1], fields[2]); err != nil {
				s.fail("%v", err)
			} else {
				s.ok("Upload succeeded")
			}

		case command == "remove" && len(fields) == 2:
			if err := s.session.RemovePath(fields[1]); err != nil {
				s.fail("%v", err)
			} else {
				s.ok("Remove succeeded")
			}

		default:
			s.fail("Unknown command or incorrect usage")
		}
	}
}
