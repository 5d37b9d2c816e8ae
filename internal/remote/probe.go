package remote

// probe.go 传输层存活探测。以零超时轮询套接字描述符，只看传输就绪状态，
// 不消费任何协议字节，因此调用方可以在发起真正的操作前判断对端是否已死，
// 而不必冒在一次阻塞操作上无限挂起的风险。

import (
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// probeConn 返回连接是否仍可用。
// POLLRDHUP 捕获对端半关闭，POLLHUP/POLLERR/POLLNVAL 捕获连接已断或
// 描述符失效；取不到描述符（连接已本地关闭）同样判定为失活。
func probeConn(conn net.Conn) bool {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		// 非套接字连接（如测试管道）无法轮询，视为存活
		return true
	}

	raw, err := sc.SyscallConn()
	if err != nil {
		return false
	}

	alive := false
	ctrlErr := raw.Control(func(fd uintptr) {
		fds := []unix.PollFd{{
			Fd:     int32(fd),
			Events: unix.POLLIN | unix.POLLOUT | unix.POLLRDHUP,
		}}

		n, err := unix.Poll(fds, 0)
		for err == unix.EINTR {
			n, err = unix.Poll(fds, 0)
		}
		if err != nil {
			return
		}
		if n > 0 && fds[0].Revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL|unix.POLLRDHUP) != 0 {
			return
		}
		alive = true
	})
	if ctrlErr != nil {
		return false
	}
	return alive
}
