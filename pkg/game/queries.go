package game

import (
	"context"
	"log"

	"github.com/gonewx/diary/internal/api"
	"github.com/gonewx/diary/pkg/config"
)

// EntriesAPI 日记列表接口
type EntriesAPI interface {
	ListEntries(ctx context.Context) ([]api.Entry, error)
}

// CreateEntryAPI 创建日记接口
type CreateEntryAPI interface {
	CreateEntry(ctx context.Context, text string) error
}

type entriesResult struct {
	entries []api.Entry
	err     error
}

// EntriesQuery 日记列表查询
//
// 数据存放在 QueryCache 的 "getEntries" 键下。每当该键过期（首次使用或被
// Invalidate），下一次 Update 发起且只发起一次请求。请求在独立 goroutine
// 中执行，结果通过通道交回，由 Update 在 UI 线程写入缓存。
// 失败不重试，错误保留到下一次成功为止。
type EntriesQuery struct {
	client  EntriesAPI
	cache   *QueryCache
	results chan entriesResult
	ctx     context.Context
	cancel  context.CancelFunc
	lastErr error
	fetches int
}

// NewEntriesQuery 创建日记列表查询
func NewEntriesQuery(client EntriesAPI, cache *QueryCache) *EntriesQuery {
	ctx, cancel := context.WithCancel(context.Background())
	return &EntriesQuery{
		client:  client,
		cache:   cache,
		results: make(chan entriesResult, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Update 应用已完成的请求结果；缓存过期时发起新请求
// 返回 true 表示本帧写入了新数据
func (q *EntriesQuery) Update() bool {
	changed := false

	select {
	case res := <-q.results:
		if res.err != nil {
			q.lastErr = res.err
			q.cache.MarkFailed(config.EntriesQueryKey)
			log.Printf("[EntriesQuery] 拉取日记列表失败: %v", res.err)
		} else {
			q.lastErr = nil
			q.cache.Set(config.EntriesQueryKey, res.entries)
			changed = true
			log.Printf("[EntriesQuery] 拉取到 %d 篇日记", len(res.entries))
		}
	default:
	}

	if q.cache.IsStale(config.EntriesQueryKey) {
		q.start()
	}
	return changed
}

func (q *EntriesQuery) start() {
	q.cache.MarkFetching(config.EntriesQueryKey)
	q.fetches++

	ctx := q.ctx
	go func() {
		entries, err := q.client.ListEntries(ctx)
		q.results <- entriesResult{entries: entries, err: err}
	}()
}

// Entries 返回缓存中的日记列表（服务端顺序）
func (q *EntriesQuery) Entries() []api.Entry {
	entries, _ := GetAs[[]api.Entry](q.cache, config.EntriesQueryKey)
	return entries
}

// Err 返回最近一次拉取的错误
func (q *EntriesQuery) Err() error {
	return q.lastErr
}

// Loading 报告是否正在拉取
func (q *EntriesQuery) Loading() bool {
	return q.cache.IsFetching(config.EntriesQueryKey)
}

// Fetches 返回已发起的请求次数
func (q *EntriesQuery) Fetches() int {
	return q.fetches
}

// Close 取消进行中的请求
func (q *EntriesQuery) Close() {
	q.cancel()
}

// CreateEntryMutation 创建日记请求
//
// Submit 在独立 goroutine 中发送 POST /api/entry，
// Update 在请求完成的那一帧返回结果，之后返回 nil。
type CreateEntryMutation struct {
	client  CreateEntryAPI
	results chan MutationResult
	ctx     context.Context
	cancel  context.CancelFunc
	pending bool
}

// MutationResult 创建请求的结果
type MutationResult struct {
	Text string
	Err  error
}

// NewCreateEntryMutation 创建日记请求
func NewCreateEntryMutation(client CreateEntryAPI) *CreateEntryMutation {
	ctx, cancel := context.WithCancel(context.Background())
	return &CreateEntryMutation{
		client:  client,
		results: make(chan MutationResult, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Submit 发送创建请求；已有请求进行中时返回 false
func (m *CreateEntryMutation) Submit(text string) bool {
	if m.pending {
		return false
	}
	m.pending = true

	ctx := m.ctx
	go func() {
		err := m.client.CreateEntry(ctx, text)
		m.results <- MutationResult{Text: text, Err: err}
	}()
	return true
}

// Update 返回本帧完成的请求结果，没有则返回 nil
func (m *CreateEntryMutation) Update() *MutationResult {
	select {
	case res := <-m.results:
		m.pending = false
		if res.Err != nil {
			log.Printf("[CreateEntryMutation] 提交失败: %v", res.Err)
		}
		return &res
	default:
		return nil
	}
}

// Pending 报告是否有请求进行中
func (m *CreateEntryMutation) Pending() bool {
	return m.pending
}

// Close 取消进行中的请求
func (m *CreateEntryMutation) Close() {
	m.cancel()
}
