package service

import (
	"context"
	"os"
	"strings"
	"testing"
)

func TestStorageStoreAndDelete(t *testing.T) {
	s := newTestStorage(t)

	url, err := s.Store(context.Background(), []byte("hello"), "text/plain", "images", "示例 文件.png")
	if err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/images/") {
		t.Errorf("url = %q, 期望 /uploads/images/ 前缀", url)
	}
	if !strings.HasSuffix(url, "-示例-文件.png") {
		t.Errorf("url = %q, 文件名空格应替换为连字符", url)
	}

	path := mustExistOnDisk(t, s, url)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("落盘内容 = %q", data)
	}

	if err := s.Delete(context.Background(), url); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("文件未被删除: %s", path)
	}
}

func TestStorageStoreUniqueNames(t *testing.T) {
	s := newTestStorage(t)
	first, err := s.Store(context.Background(), []byte("1"), "text/plain", "images", "same.png")
	if err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	second, err := s.Store(context.Background(), []byte("2"), "text/plain", "images", "same.png")
	if err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	if first == second {
		t.Errorf("同名文件两次写入得到相同URL: %q", first)
	}
}

func TestStorageDeleteExternalURLIsNoOp(t *testing.T) {
	s := newTestStorage(t)
	if err := s.Delete(context.Background(), "https://cdn.example.com/x.png"); err != nil {
		t.Errorf("外部地址删除 = %v, 期望空操作", err)
	}
	if err := s.Delete(context.Background(), ""); err != nil {
		t.Errorf("空URL删除 = %v, 期望空操作", err)
	}
}

func TestStorageRewrite(t *testing.T) {
	s := newTestStorage(t)
	url, err := s.Store(context.Background(), []byte("v1"), "application/javascript", "canvas", "app.js")
	if err != nil {
		t.Fatalf("写入失败: %v", err)
	}

	if err := s.Rewrite(context.Background(), url, []byte("v2"), "application/javascript"); err != nil {
		t.Fatalf("覆盖失败: %v", err)
	}
	data, err := os.ReadFile(mustExistOnDisk(t, s, url))
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if string(data) != "v2" {
		t.Errorf("内容 = %q, 期望原地覆盖为 v2", data)
	}

	// 不归本服务管理的URL直接跳过
	if err := s.Rewrite(context.Background(), "https://cdn.example.com/app.js", []byte("v3"), ""); err != nil {
		t.Errorf("外部地址覆盖 = %v, 期望空操作", err)
	}
}

func TestLocalProviderOwns(t *testing.T) {
	p := &LocalStorageProvider{}
	cases := []struct {
		url      string
		wantName string
		wantOK   bool
	}{
		{"/uploads/images/a.png", "images/a.png", true},
		{"/uploads/", "", false},
		{"https://cdn.example.com/a.png", "", false},
		{"/static/a.png", "", false},
	}
	for _, tc := range cases {
		name, ok := p.Owns(tc.url)
		if name != tc.wantName || ok != tc.wantOK {
			t.Errorf("Owns(%q) = (%q, %v), 期望 (%q, %v)", tc.url, name, ok, tc.wantName, tc.wantOK)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"a b.png", "a-b.png"},
		{"  my file.mp4  ", "my-file.mp4"},
		{"../../etc/passwd", "passwd"},
		{"", ""},
		{"plain.js", "plain.js"},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, 期望 %q", tc.in, got, tc.want)
		}
	}
}
