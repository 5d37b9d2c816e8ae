// Package config 管理 sftpsh 的连接凭证和 CLI 交互式输入。
// 不读写任何配置文件或环境变量，所有连接信息都来自交互式输入。
package config

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/ssh"
)

// 认证方式，key 与 password 二选一
const (
	AuthMethodKey      = "key"
	AuthMethodPassword = "password"
)

// Credentials SSH 登录凭证
type Credentials struct {
	Username       string
	Method         string
	PrivateKeyPath string // Method 为 key 时必填
	Password       string // Method 为 password 时必填
}

// Validate 检查凭证完整性：用户名必填，认证方式恰好配置一种
func (c *Credentials) Validate() error {
	if c.Username == "" {
		return errors.New("用户名不能为空")
	}
	switch c.Method {
	case AuthMethodKey:
		if c.PrivateKeyPath == "" {
			return errors.New("key 认证需要私钥文件路径")
		}
		if c.Password != "" {
			return errors.New("key 认证不能同时携带密码")
		}
	case AuthMethodPassword:
		if c.Password == "" {
			return errors.New("password 认证需要密码")
		}
		if c.PrivateKeyPath != "" {
			return errors.New("password 认证不能同时携带私钥路径")
		}
	default:
		return fmt.Errorf("未知认证方式: %q", c.Method)
	}
	return nil
}

// AuthMethods 构造 SSH 认证方式列表（恰好一个元素）。
// key 认证从文件读取并解析私钥。
func (c *Credentials) AuthMethods() ([]ssh.AuthMethod, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.Method == AuthMethodPassword {
		return []ssh.AuthMethod{ssh.Password(c.Password)}, nil
	}

	keyData, err := os.ReadFile(c.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("读取 SSH 私钥失败: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(keyData)
	if err != nil {
		return nil, fmt.Errorf("解析 SSH 私钥失败: %w", err)
	}
	return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil
}
