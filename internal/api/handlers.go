package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aiwuxian/project-delve/internal/models"
	"github.com/aiwuxian/project-delve/internal/services"
	"github.com/aiwuxian/project-delve/internal/storage"
)

type Handler struct {
	store          *storage.Storage
	charService    *services.CharacterService
	sessionService *services.SessionService
	combatService  *services.CombatService
}

func NewHandler(store *storage.Storage, charService *services.CharacterService,
	sessionService *services.SessionService, combatService *services.CombatService) *Handler {
	return &Handler{
		store:          store,
		charService:    charService,
		sessionService: sessionService,
		combatService:  combatService,
	}
}

// CreateCharacter 创建角色（手动指定属性）
func (h *Handler) CreateCharacter(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		Strength  int    `json:"strength" binding:"required"`
		Dexterity int    `json:"dexterity" binding:"required"`
		Willpower int    `json:"willpower" binding:"required"`
		Toughness int    `json:"toughness" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	char, err := h.charService.CreateCustom(req.Name, req.Strength, req.Dexterity, req.Willpower, req.Toughness)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.CreateCharacter(char); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, char)
}

// GenerateCharacter 随机生成角色
func (h *Handler) GenerateCharacter(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	char := h.charService.CreateRandom(req.Name)

	if err := h.store.CreateCharacter(char); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, char)
}

// GetCharacter 获取角色信息
func (h *Handler) GetCharacter(c *gin.Context) {
	id := c.Param("id")

	char, err := h.store.GetCharacter(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "角色不存在"})
		return
	}

	c.JSON(http.StatusOK, char)
}

// ListCharacters 获取所有角色列表
func (h *Handler) ListCharacters(c *gin.Context) {
	characters, err := h.store.GetAllCharacters()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, characters)
}

// EquipItem 从背包装备道具
func (h *Handler) EquipItem(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		ItemName string `json:"item_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	char, err := h.store.GetCharacter(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "角色不存在"})
		return
	}

	item := char.FindItem(req.ItemName)
	if item == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "背包中没有该道具"})
		return
	}

	if err := char.Equip(*item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.UpdateCharacter(char); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, char)
}

// CastScroll 战斗外施法（卷轴无论成败烧毁）
func (h *Handler) CastScroll(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		ScrollName string `json:"scroll_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	char, err := h.store.GetCharacter(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "角色不存在"})
		return
	}

	result, err := h.charService.CastScroll(char, req.ScrollName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.UpdateCharacter(char); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result, "character": char})
}

// CreateSession 新建游戏会话
func (h *Handler) CreateSession(c *gin.Context) {
	var req struct {
		Name         string   `json:"name" binding:"required"`
		CharacterIDs []string `json:"character_ids" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	session := h.sessionService.Create(req.Name)
	for _, cid := range req.CharacterIDs {
		char, err := h.store.GetCharacter(cid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "角色不存在: " + cid})
			return
		}
		h.sessionService.AddCharacter(session, char)
	}

	if err := h.store.SaveSession(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("✅ 会话创建成功, ID: %s, 队伍 %d 人\n", session.ID, len(session.Party))
	c.JSON(http.StatusOK, session)
}

// GetSession 获取会话状态
func (h *Handler) GetSession(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session)
}

// ListSessions 获取所有会话
func (h *Handler) ListSessions(c *gin.Context) {
	sessions, err := h.store.GetAllSessions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// EnterDungeon 生成并进入地城
func (h *Handler) EnterDungeon(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	var req struct {
		Tier int `json:"tier"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	dungeon, err := h.sessionService.EnterDungeon(session, req.Tier)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SaveSession(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("🏰 队伍进入地城: %s (%d 个房间)\n", dungeon.Name(), dungeon.TotalRoom)
	c.JSON(http.StatusOK, gin.H{"dungeon": dungeon, "session": session})
}

// AdvanceRoom 前进到下一个房间
func (h *Handler) AdvanceRoom(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	report, err := h.sessionService.AdvanceRoom(session)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SaveSession(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report, "session": session})
}

// PickUpTreasure 拾取当前房间的宝藏
func (h *Handler) PickUpTreasure(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	var req struct {
		CharacterID string `json:"character_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	report, err := h.sessionService.PickUpTreasure(session, req.CharacterID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SaveSession(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// RestParty 全队过夜休息
func (h *Handler) RestParty(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	healed, err := h.sessionService.RestParty(session)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SaveSession(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"healed": healed, "session": session})
}

// StartEncounter 对当前房间的怪物开战
func (h *Handler) StartEncounter(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	encounter, err := h.sessionService.StartEncounter(session)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SaveSession(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, encounter)
}

// GetEncounter 获取当前遭遇战状态
func (h *Handler) GetEncounter(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}
	if session.ActiveEncounter == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "没有进行中的遭遇战"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"encounter": session.ActiveEncounter,
		"is_over":   session.ActiveEncounter.Over(),
	})
}

// CombatAttack 玩家攻击
func (h *Handler) CombatAttack(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}
	if session.ActiveEncounter == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "没有进行中的遭遇战"})
		return
	}

	var req struct {
		TargetID string `json:"target_id"`
	}
	c.ShouldBindJSON(&req) // target 可省略，默认打第一个活怪

	result, err := h.combatService.Attack(session.ActiveEncounter, req.TargetID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SaveSession(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result, "encounter": session.ActiveEncounter})
}

// CombatUseItem 战斗中使用道具
func (h *Handler) CombatUseItem(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}
	if session.ActiveEncounter == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "没有进行中的遭遇战"})
		return
	}

	var req struct {
		ItemName string `json:"item_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	result, err := h.combatService.UseItem(session.ActiveEncounter, req.ItemName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SaveSession(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result, "encounter": session.ActiveEncounter})
}

// CombatFlee 尝试逃跑
func (h *Handler) CombatFlee(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}
	if session.ActiveEncounter == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "没有进行中的遭遇战"})
		return
	}

	result, err := h.combatService.Flee(session.ActiveEncounter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SaveSession(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result, "encounter": session.ActiveEncounter})
}

// CombatMonsterTurn 结算怪物回合
func (h *Handler) CombatMonsterTurn(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}
	if session.ActiveEncounter == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "没有进行中的遭遇战"})
		return
	}

	if err := h.combatService.MonsterTurn(session.ActiveEncounter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SaveSession(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, session.ActiveEncounter)
}

// ResolveEncounter 遭遇战收尾：分发战利品或判负
func (h *Handler) ResolveEncounter(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	report, err := h.sessionService.ResolveEncounter(session)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SaveSession(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"loot": report, "session": session})
}

// SaveGame 创建存档
func (h *Handler) SaveGame(c *gin.Context) {
	var req struct {
		SessionID   string `json:"session_id" binding:"required"`
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	session, err := h.store.GetSession(req.SessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "会话不存在"})
		return
	}

	// 存档前把会话快照落库
	if err := h.store.SaveSession(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	save := &models.SaveGame{
		ID:          uuid.New().String(),
		Name:        req.Name,
		SessionID:   req.SessionID,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	if err := h.store.CreateSaveGame(save); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, save)
}

// ListSaves 获取会话的存档列表
func (h *Handler) ListSaves(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 session_id"})
		return
	}

	saves, err := h.store.GetSaveGamesBySession(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, saves)
}

// LoadGame 读档：返回存档指向的会话
func (h *Handler) LoadGame(c *gin.Context) {
	var req struct {
		SaveID string `json:"save_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	save, err := h.store.GetSaveGame(req.SaveID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "存档不存在"})
		return
	}

	session, err := h.store.GetSession(save.SessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "存档指向的会话不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"save": save, "session": session})
}

// loadSession 按路径参数取会话，找不到时直接回 404
func (h *Handler) loadSession(c *gin.Context) (*models.Session, bool) {
	id := c.Param("id")
	session, err := h.store.GetSession(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "会话不存在"})
		return nil, false
	}
	return session, true
}
