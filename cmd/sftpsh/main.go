package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/hwuu/sftpsh/internal/config"
	"github.com/hwuu/sftpsh/internal/remote"
	"github.com/hwuu/sftpsh/internal/shell"
)

// 构建时通过 ldflags 注入
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	var port int

	rootCmd := &cobra.Command{
		Use:           "sftpsh",
		Short:         "交互式 SSH/SFTP 文件传输 shell",
		Long:          "sftpsh — 通过 SSH/SFTP 上传单个文件、递归删除远端目录树的交互式 shell。",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(port)
		},
	}
	rootCmd.Flags().IntVar(&port, "port", remote.DefaultPort, "SSH 端口")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sftpsh %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
			fmt.Printf("  go:     %s\n", runtime.Version())
		},
	}
}

// promptCredentials 交互式收集连接信息。认证方式回答 password 时走密码，
// 其余一律按 key 处理。
func promptCredentials(prompter *config.Prompter) (hostname string, creds *config.Credentials, err error) {
	hostname, err = prompter.Prompt("Enter SSH hostname: ")
	if err != nil {
		return "", nil, fmt.Errorf("读取主机名失败: %w", err)
	}

	username, err := prompter.Prompt("Enter SSH username: ")
	if err != nil {
		return "", nil, fmt.Errorf("读取用户名失败: %w", err)
	}

	method, err := prompter.Prompt("Authentication method (key/password): ")
	if err != nil {
		return "", nil, fmt.Errorf("读取认证方式失败: %w", err)
	}

	creds = &config.Credentials{Username: username}
	if method == config.AuthMethodPassword {
		creds.Method = config.AuthMethodPassword
		creds.Password, err = prompter.PromptPassword("Enter password: ")
		if err != nil {
			return "", nil, fmt.Errorf("读取密码失败: %w", err)
		}
	} else {
		creds.Method = config.AuthMethodKey
		creds.PrivateKeyPath, err = prompter.Prompt("Enter path to private key: ")
		if err != nil {
			return "", nil, fmt.Errorf("读取私钥路径失败: %w", err)
		}
	}

	return hostname, creds, nil
}

// runShell 建立会话后进入命令循环，退出前按序关闭会话
func runShell(port int) error {
	prompter := config.NewDefaultPrompter()

	hostname, creds, err := promptCredentials(prompter)
	if err != nil {
		fmt.Printf("0|%v\n", err)
		return err
	}

	auth, err := creds.AuthMethods()
	if err != nil {
		fmt.Printf("0|%v\n", err)
		return err
	}

	sess, err := remote.Connect(hostname, port, creds.Username, auth)
	if err != nil {
		if creds.Method == config.AuthMethodPassword {
			fmt.Println("0|Failed to establish SFTP session with password")
		} else {
			fmt.Println("0|Failed to establish SFTP session with key")
		}
		return err
	}

	runErr := shell.New(sess, prompter, os.Stdout).Run()

	if err := sess.Close(); err != nil {
		fmt.Printf("0|%v\n", err)
		return errors.Join(runErr, err)
	}
	fmt.Println("1|Session closed")
	return runErr
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
