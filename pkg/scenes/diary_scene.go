package scenes

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"math/rand"

	"github.com/gonewx/diary/internal/api"
	"github.com/gonewx/diary/internal/timeline"
	"github.com/gonewx/diary/pkg/components"
	"github.com/gonewx/diary/pkg/config"
	"github.com/gonewx/diary/pkg/ecs"
	"github.com/gonewx/diary/pkg/game"
	"github.com/gonewx/diary/pkg/layout"
	"github.com/gonewx/diary/pkg/systems"
	"github.com/gonewx/diary/pkg/utils"
	"github.com/gonewx/diary/pkg/writing"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 界面文案
const (
	headingText        = "Dear Diary..."
	placeholderText    = "What happened today?"
	submitLabel        = "Write"
	submittingLabel    = "Saving..."
	listErrorText      = "couldn't load pages"
	createErrorPrefix  = "couldn't save: "
	loadingText        = "loading pages..."
	emptyText          = "no pages yet"
	cardDateLayout     = "Jan 2, 2006 15:04"
	submitButtonWidth  = 120.0
	submitButtonHeight = 40.0
	inputPadding       = 12.0
	wheelStep          = 40.0
)

var (
	colorBackground = color.RGBA{246, 243, 236, 255}
	colorHeading    = color.RGBA{40, 40, 48, 255}
	colorMuted      = color.RGBA{130, 130, 140, 255}
	colorBanner     = color.RGBA{200, 40, 40, 255}
)

// DiaryClient 日记服务端接口
type DiaryClient interface {
	game.EntriesAPI
	game.CreateEntryAPI
}

// DiarySceneOptions 创建 DiaryScene 所需的依赖
type DiarySceneOptions struct {
	Client   DiaryClient
	Cache    *game.QueryCache      // 为 nil 时新建
	Fonts    *game.Fonts           // 为 nil 时不绘制文字，测量目标不存在
	Settings *game.SettingsManager // 为 nil 时不保存未提交文字

	// Measurer 覆盖默认的字体测量，测试时注入
	Measurer layout.Measurer

	// Width/Height 逻辑屏幕尺寸，为 0 时使用默认窗口尺寸
	Width  int
	Height int

	// Rand 旋转抖动的随机源，为 nil 时使用全局随机源
	Rand *rand.Rand
}

// DiaryScene 日记主界面
//
// 上方是输入框与提交按钮，中间是书写动画区域，下方是历史日记网格。
// 提交流程：校验 → 创建请求 → 成功后开始书写动画 → 动画结束时清空草稿
// 并使列表缓存失效，触发一次重新拉取。
type DiaryScene struct {
	entityManager *ecs.EntityManager

	textInputSystem *systems.TextInputSystem
	buttonSystem    *systems.ButtonSystem
	writingSystem   *systems.WritingAnimationSystem
	letterSystem    *systems.LetterRevealSystem
	fadeInSystem    *systems.FadeInSystem
	renderSystem    *systems.RenderSystem
	cache           *game.QueryCache
	entries         *game.EntriesQuery
	create          *game.CreateEntryMutation
	settings        *game.SettingsManager
	fonts           *game.Fonts
	measurer        layout.Measurer
	bodyWidth       utils.WidthFunc
	rnd             *rand.Rand
	draft           game.Draft
	width, height   float64
	contentWidth    float64
	inputEntity     ecs.EntityID
	buttonEntity    ecs.EntityID
	writingEntity   ecs.EntityID
	writingActive   bool
	writingHeight   float64
	cards           map[string]ecs.EntityID
	cardOrder       []string
	scrollY         float64
	contentBottom   float64
	submitRequested bool
}

// NewDiaryScene 创建日记主界面
func NewDiaryScene(opts DiarySceneOptions) *DiaryScene {
	width, height := float64(opts.Width), float64(opts.Height)
	if width <= 0 || height <= 0 {
		width, height = config.WindowWidth, config.WindowHeight
	}

	cache := opts.Cache
	if cache == nil {
		cache = game.NewQueryCache()
	}

	em := ecs.NewEntityManager()
	s := &DiaryScene{
		entityManager:   em,
		textInputSystem: systems.NewTextInputSystem(em),
		buttonSystem:    systems.NewButtonSystem(em),
		writingSystem:   systems.NewWritingAnimationSystem(em),
		letterSystem:    systems.NewLetterRevealSystem(em),
		fadeInSystem:    systems.NewFadeInSystem(em),
		cache:           cache,
		entries:         game.NewEntriesQuery(opts.Client, cache),
		create:          game.NewCreateEntryMutation(opts.Client),
		settings:        opts.Settings,
		fonts:           opts.Fonts,
		rnd:             opts.Rand,
		width:           width,
		height:          height,
		contentWidth:    math.Max(width-2*config.PageMargin, 0),
		cards:           make(map[string]ecs.EntityID),
	}

	var body, small *text.GoTextFace
	if s.fonts != nil {
		body, small = s.fonts.Body, s.fonts.Small
	}
	s.renderSystem = systems.NewRenderSystem(em, body, small)
	s.bodyWidth = utils.FaceWidth(body)

	s.measurer = opts.Measurer
	if s.measurer == nil {
		s.measurer = layout.NewFaceMeasurer(body, config.MeasureWidth(s.contentWidth))
	}

	s.createInput()
	s.createSubmitButton()

	log.Printf("[DiaryScene] 初始化完成 (%.0fx%.0f)", width, height)
	return s
}

// inputRect 输入框位置与尺寸
func (s *DiaryScene) inputRect() (x, y, w, h float64) {
	return config.PageMargin, 64, s.contentWidth, config.TextAreaRows*config.LineHeight + 2*inputPadding
}

// buttonRect 提交按钮位置与尺寸
func (s *DiaryScene) buttonRect() (x, y, w, h float64) {
	ix, iy, iw, ih := s.inputRect()
	return ix + iw - submitButtonWidth, iy + ih + 24, submitButtonWidth, submitButtonHeight
}

// writingOrigin 书写文本块左上角
// 上方留出铅笔起始位置的空间
func (s *DiaryScene) writingOrigin() (x, y float64) {
	_, by, _, bh := s.buttonRect()
	return config.PageMargin + 2*config.MeasureInset, by + bh + config.MeasureInset - config.PencilTopOffset
}

// gridTop 历史日记网格顶部（未滚动时）
func (s *DiaryScene) gridTop() float64 {
	_, by, _, bh := s.buttonRect()
	top := by + bh + 2*config.PageGap
	if s.writingActive {
		_, wy := s.writingOrigin()
		top = wy + s.writingHeight + 2*config.PageGap
	}
	return top
}

func (s *DiaryScene) createInput() {
	x, y, w, h := s.inputRect()
	s.inputEntity = s.entityManager.CreateEntity()
	input := &components.TextInputComponent{
		Width:       w,
		Height:      h,
		Placeholder: placeholderText,
		IsFocused:   true,
		Padding:     inputPadding,
		OnSubmit:    s.requestSubmit,
	}
	if s.settings != nil {
		if unsent := s.settings.GetSettings().UnsentText; unsent != "" {
			systems.SetText(input, unsent)
			log.Printf("[DiaryScene] 恢复未提交的文字 (%d 字符)", len([]rune(unsent)))
		}
	}
	s.entityManager.AddComponent(s.inputEntity, input)
	s.entityManager.AddComponent(s.inputEntity, &components.PositionComponent{X: x, Y: y})
}

func (s *DiaryScene) createSubmitButton() {
	x, y, w, h := s.buttonRect()
	s.buttonEntity = s.entityManager.CreateEntity()
	s.entityManager.AddComponent(s.buttonEntity, &components.ButtonComponent{
		Text:    submitLabel,
		Width:   w,
		Height:  h,
		Enabled: true,
		OnClick: s.requestSubmit,
	})
	s.entityManager.AddComponent(s.buttonEntity, &components.PositionComponent{X: x, Y: y})
}

func (s *DiaryScene) input() *components.TextInputComponent {
	input, _ := ecs.GetComponent[*components.TextInputComponent](s.entityManager, s.inputEntity)
	return input
}

func (s *DiaryScene) button() *components.ButtonComponent {
	button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, s.buttonEntity)
	return button
}

// requestSubmit 回调中只记录请求，提交在本帧逻辑中处理
func (s *DiaryScene) requestSubmit() {
	s.submitRequested = true
}

// Submit 提交输入框中的文字
//
// 校验失败时在输入框下方显示错误，不发请求。
// 已有请求进行中或草稿正在书写时忽略。
func (s *DiaryScene) Submit() {
	input := s.input()
	if input == nil {
		return
	}
	if s.create.Pending() || s.draft.Active() {
		return
	}

	if err := game.ValidateEntryText(input.Text); err != nil {
		input.ErrorMessage = err.Error()
		return
	}

	text := input.Text
	if !s.create.Submit(text) {
		return
	}
	input.ErrorMessage = ""
	systems.Reset(input)
	log.Printf("[DiaryScene] 提交日记 (%d 字符)", len([]rune(text)))
}

// Update 每帧更新：先处理输入，再推进逻辑
func (s *DiaryScene) Update(deltaTime float64) {
	s.textInputSystem.Update(deltaTime)
	s.buttonSystem.Update(deltaTime)

	if dy := utils.WheelDelta(wheelStep); dy != 0 {
		s.Scroll(dy)
	}

	s.Tick(deltaTime)
}

// Tick 推进与输入设备无关的逻辑
func (s *DiaryScene) Tick(deltaTime float64) {
	if s.submitRequested {
		s.submitRequested = false
		s.Submit()
	}

	if res := s.create.Update(); res != nil {
		s.handleCreateResult(res)
	}

	s.writingSystem.Update(deltaTime)
	s.letterSystem.Update(deltaTime)

	if s.entries.Update() {
		s.rebuildCards()
	}
	s.fadeInSystem.Update(deltaTime)

	s.updateButton()
	s.layoutCards()
	s.entityManager.RemoveMarkedEntities()
}

func (s *DiaryScene) handleCreateResult(res *game.MutationResult) {
	if res.Err != nil {
		// 失败：恢复文字，显示错误，不重试
		input := s.input()
		if input != nil {
			if input.Text == "" {
				systems.SetText(input, res.Text)
			}
			input.ErrorMessage = createErrorPrefix + errorSummary(res.Err)
		}
		return
	}

	if s.settings != nil {
		s.settings.SetUnsentText("")
	}
	s.startWriting(res.Text)
}

// errorSummary 把请求错误压缩成一行提示
func errorSummary(err error) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("server answered %d", statusErr.StatusCode)
	}
	return "network error"
}

// startWriting 开始书写动画
// 测量目标不存在时跳过动画，直接完成
func (s *DiaryScene) startWriting(text string) {
	s.draft.Begin(text)

	m, err := s.measurer.Measure(text)
	if err != nil || m.LineCount == 0 {
		if err != nil && !errors.Is(err, layout.ErrNoTarget) {
			log.Printf("[DiaryScene] Warning: 测量失败: %v", err)
		}
		s.completeWriting()
		return
	}

	path, err := writing.Generate(m, s.rnd)
	if err != nil {
		log.Printf("[DiaryScene] Warning: 生成书写路径失败: %v", err)
		s.completeWriting()
		return
	}

	ox, oy := s.writingOrigin()
	player := timeline.NewPlayer(path.Timeline())
	player.OnComplete = s.completeWriting

	id := s.entityManager.CreateEntity()
	s.entityManager.AddComponent(id, &components.PositionComponent{X: ox, Y: oy})
	s.entityManager.AddComponent(id, &components.LetterRevealComponent{
		Glyphs:     systems.LayoutGlyphs(m.Lines, s.bodyWidth),
		LineHeight: config.LineHeight,
	})
	s.entityManager.AddComponent(id, &components.PencilComponent{
		OriginX:   ox,
		OriginY:   oy,
		TextWidth: m.Width,
		Top:       config.PencilTopOffset,
	})
	s.entityManager.AddComponent(id, &components.WritingAnimationComponent{Path: path, Player: player})

	s.writingEntity = id
	s.writingActive = true
	s.writingHeight = m.Height
	log.Printf("[DiaryScene] 开始书写: %d 行, 时长 %.2fs", path.LineCount, path.Total())
}

// completeWriting 书写结束：清空草稿，使列表失效
func (s *DiaryScene) completeWriting() {
	s.draft.Clear()
	s.cache.Invalidate(config.EntriesQueryKey)

	if s.writingActive {
		s.entityManager.DestroyEntity(s.writingEntity)
		s.writingActive = false
		s.writingHeight = 0
	}
}

func (s *DiaryScene) updateButton() {
	button := s.button()
	if button == nil {
		return
	}
	busy := s.create.Pending() || s.draft.Active()
	button.Enabled = !busy
	if s.create.Pending() {
		button.Text = submittingLabel
	} else {
		button.Text = submitLabel
	}
}

// cardWidth 网格中一张卡片的宽度
func (s *DiaryScene) cardWidth() float64 {
	return (s.contentWidth - float64(config.PageColumns-1)*config.PageGap) / config.PageColumns
}

// rebuildCards 按服务端顺序重建卡片
// 已显示过的条目（按 ts）保留原实体，不再播放淡入
func (s *DiaryScene) rebuildCards() {
	entries := s.entries.Entries()
	seen := make(map[string]bool, len(entries))
	order := make([]string, 0, len(entries))

	cardW := s.cardWidth()
	for _, entry := range entries {
		key := cardKey(entry)
		if seen[key] {
			continue
		}
		seen[key] = true
		order = append(order, key)

		if _, ok := s.cards[key]; ok {
			continue
		}

		lines := utils.WrapText(entry.Text, s.bodyWidth, cardW-2*config.CardPadding)
		date := ""
		if !entry.DateTime.IsZero() {
			date = entry.DateTime.Local().Format(cardDateLayout)
		}

		id := s.entityManager.CreateEntity()
		s.entityManager.AddComponent(id, &components.PositionComponent{})
		s.entityManager.AddComponent(id, &components.EntryCardComponent{
			TS:     key,
			Date:   date,
			Lines:  lines,
			Width:  cardW,
			Height: 2*config.CardPadding + config.LineHeight*float64(len(lines)+1),
		})
		s.entityManager.AddComponent(id, &components.FadeInComponent{
			Duration: config.PageFadeInDuration,
			OffsetY:  config.PageFadeInOffsetY,
		})
		s.cards[key] = id
	}

	for key, id := range s.cards {
		if !seen[key] {
			s.entityManager.DestroyEntity(id)
			delete(s.cards, key)
		}
	}
	s.cardOrder = order
}

// cardKey 卡片的唯一键，服务端未给出 ts 时退回到时间与正文
func cardKey(entry api.Entry) string {
	if entry.TS != "" {
		return entry.TS
	}
	return fmt.Sprintf("%d|%s", entry.DateTime.UnixMilli(), entry.Text)
}

// layoutCards 三列网格，行高取该行最高的卡片
func (s *DiaryScene) layoutCards() {
	top := s.gridTop()
	cardW := s.cardWidth()

	y := top
	rowHeight := 0.0
	for i, key := range s.cardOrder {
		col := i % config.PageColumns
		if col == 0 && i > 0 {
			y += rowHeight + config.PageGap
			rowHeight = 0
		}

		id := s.cards[key]
		card, ok := ecs.GetComponent[*components.EntryCardComponent](s.entityManager, id)
		if !ok {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		pos.X = config.PageMargin + float64(col)*(cardW+config.PageGap)
		pos.Y = y - s.scrollY
		rowHeight = math.Max(rowHeight, card.Height)
	}
	s.contentBottom = y + rowHeight

	s.scrollY = s.clampScroll(s.scrollY)
	s.renderSystem.CardClip = image.Rect(0, int(top-config.PageGap), int(s.width), int(s.height))
}

func (s *DiaryScene) clampScroll(y float64) float64 {
	maxScroll := math.Max(s.contentBottom+config.PageMargin-s.height, 0)
	return math.Max(0, math.Min(y, maxScroll))
}

// Scroll 滚动历史日记网格
func (s *DiaryScene) Scroll(dy float64) {
	s.scrollY = s.clampScroll(s.scrollY + dy)
}

// Draw 绘制界面
func (s *DiaryScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	if s.fonts != nil {
		drawText(screen, headingText, s.fonts.Heading, config.PageMargin, 24, colorHeading)
	}

	s.renderSystem.Draw(screen)

	if s.fonts == nil {
		return
	}
	_, by, _, _ := s.buttonRect()
	statusY := by + 10
	switch {
	case s.entries.Err() != nil:
		drawText(screen, listErrorText, s.fonts.Small, config.PageMargin, statusY, colorBanner)
	case s.entries.Loading() && len(s.cardOrder) == 0:
		drawText(screen, loadingText, s.fonts.Small, config.PageMargin, statusY, colorMuted)
	case !s.entries.Loading() && len(s.cardOrder) == 0 && !s.draft.Active():
		drawText(screen, emptyText, s.fonts.Small, config.PageMargin, statusY, colorMuted)
	}
}

func drawText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// SaveOnExit 保存输入框中尚未提交的文字
func (s *DiaryScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	if input := s.input(); input != nil {
		s.settings.SetUnsentText(input.Text)
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[DiaryScene] Warning: 保存设置失败: %v", err)
		return false
	}
	return true
}

// Teardown 取消进行中的请求并停止动画
func (s *DiaryScene) Teardown() {
	s.entries.Close()
	s.create.Close()
	if s.writingActive {
		if anim, ok := ecs.GetComponent[*components.WritingAnimationComponent](s.entityManager, s.writingEntity); ok && anim.Player != nil {
			anim.Player.Stop()
		}
	}
}

// Draft 返回正在书写的草稿
func (s *DiaryScene) Draft() *game.Draft {
	return &s.draft
}

// Writing 报告书写动画是否在播放
func (s *DiaryScene) Writing() bool {
	return s.writingActive
}

// CardKeys 返回当前卡片的 ts，按显示顺序
func (s *DiaryScene) CardKeys() []string {
	return append([]string(nil), s.cardOrder...)
}
