package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce 编辑器保存文件时会连续触发多个事件，合并为一次重载
const reloadDebounce = 100 * time.Millisecond

// Watch 监听配置文件变化，每次文件被修改并成功解析后发送新配置
//
// 监听的是配置文件所在目录：很多编辑器通过"写临时文件 + 重命名"保存，
// 直接监听文件会在第一次保存后丢失监听。
// 解析失败的修改只记录日志，不发送。
// ctx 取消后关闭返回的通道。
//
// 返回的通道容量为 1，只保留最新的配置；接收方在 UI 线程上非阻塞地读取。
func Watch(ctx context.Context, path string) (<-chan *DiaryConfig, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan *DiaryConfig, 1)
	go runWatch(ctx, watcher, abs, out)
	return out, nil
}

func runWatch(ctx context.Context, watcher *fsnotify.Watcher, path string, out chan *DiaryConfig) {
	defer close(out)
	defer watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[ConfigWatcher] Warning: %v", err)

		case <-fire:
			fire = nil
			cfg, err := LoadDiaryConfig(path)
			if err != nil {
				log.Printf("[ConfigWatcher] 重载配置失败（保留当前配置）: %v", err)
				continue
			}
			log.Printf("[ConfigWatcher] 配置已重载: %s", path)

			// 丢弃未被读取的旧配置，只保留最新的
			select {
			case <-out:
			default:
			}
			out <- cfg
		}
	}
}
