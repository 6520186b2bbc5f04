// Package util 与平台相关的小工具
package util

import (
	"errors"
	"os/exec"
	"runtime"
)

// launch 一条打开浏览器的命令
type launch struct {
	name string
	args []string
}

// launchers 每个平台依次尝试的命令；url 追加在参数末尾
var launchers = map[string][]launch{
	// rundll32 不会弹出控制台窗口
	"windows": {{name: "rundll32", args: []string{"url.dll,FileProtocolHandler"}}, {name: "explorer"}},
	"darwin":  {{name: "open"}},
	"linux": {
		{name: "xdg-open"},
		{name: "google-chrome"},
		{name: "firefox"},
		{name: "chromium-browser"},
		{name: "sensible-browser"},
	},
}

// BrowserCommands 返回在 goos 上打开 url 时依次尝试的命令
func BrowserCommands(goos, url string) [][]string {
	list, ok := launchers[goos]
	if !ok {
		list = []launch{{name: "xdg-open"}}
	}
	out := make([][]string, 0, len(list))
	for _, l := range list {
		cmd := append([]string{l.name}, l.args...)
		out = append(out, append(cmd, url))
	}
	return out
}

// starter 启动外部命令且不等待其退出
type starter func(name string, args ...string) error

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

func openWith(start starter, goos, url string) error {
	var errs []error
	for _, cmd := range BrowserCommands(goos, url) {
		err := start(cmd[0], cmd[1:]...)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// OpenBrowser 用默认浏览器打开 url，失败时依次尝试备选命令
func OpenBrowser(url string) error {
	return openWith(startCommand, runtime.GOOS, url)
}
