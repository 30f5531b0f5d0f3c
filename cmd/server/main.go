package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"

	"github.com/aiwuxian/project-delve/internal/api"
	"github.com/aiwuxian/project-delve/internal/dice"
	"github.com/aiwuxian/project-delve/internal/models"
	"github.com/aiwuxian/project-delve/internal/services"
	"github.com/aiwuxian/project-delve/internal/storage"
)

func main() {
	// 加载配置
	config, err := loadConfig("config.yml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化数据库
	store, err := storage.New(config.Database.Path)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	defer store.Close()

	// 初始化骰子源：seed 为 0 时用时间种子
	var src dice.Source = dice.NewTimeRoller()
	if config.Game.Seed != 0 {
		src = dice.NewRoller(config.Game.Seed)
	}

	// 初始化服务
	ruleEngine := services.NewRuleEngine(src)
	charService := services.NewCharacterService(src, config.Game)
	itemService := services.NewItemService(src)
	monsterService := services.NewMonsterService(src, config.Game)
	dungeonService := services.NewDungeonService(src, monsterService, itemService)
	combatService := services.NewCombatService(src, itemService, charService, config.Game)
	sessionService := services.NewSessionService(charService, dungeonService, combatService, ruleEngine, config.Game)

	// 初始化API处理器
	handler := api.NewHandler(store, charService, sessionService, combatService)

	// 设置Gin路由
	r := gin.Default()

	// 静态文件
	r.Static("/web", "./web")
	r.GET("/", func(c *gin.Context) {
		c.Redirect(302, "/web/index.html")
	})

	// API路由
	apiGroup := r.Group("/api")
	{
		// 角色相关
		apiGroup.POST("/characters", handler.CreateCharacter)
		apiGroup.POST("/characters/generate", handler.GenerateCharacter)
		apiGroup.GET("/characters", handler.ListCharacters)
		apiGroup.GET("/characters/:id", handler.GetCharacter)
		apiGroup.POST("/characters/:id/equip", handler.EquipItem)
		apiGroup.POST("/characters/:id/cast", handler.CastScroll)

		// 会话相关
		apiGroup.POST("/sessions", handler.CreateSession)
		apiGroup.GET("/sessions", handler.ListSessions)
		apiGroup.GET("/sessions/:id", handler.GetSession)
		apiGroup.POST("/sessions/:id/dungeon", handler.EnterDungeon)
		apiGroup.POST("/sessions/:id/advance", handler.AdvanceRoom)
		apiGroup.POST("/sessions/:id/treasure", handler.PickUpTreasure)
		apiGroup.POST("/sessions/:id/rest", handler.RestParty)

		// 战斗相关
		apiGroup.POST("/sessions/:id/encounter", handler.StartEncounter)
		apiGroup.GET("/sessions/:id/encounter", handler.GetEncounter)
		apiGroup.POST("/sessions/:id/encounter/attack", handler.CombatAttack)
		apiGroup.POST("/sessions/:id/encounter/item", handler.CombatUseItem)
		apiGroup.POST("/sessions/:id/encounter/flee", handler.CombatFlee)
		apiGroup.POST("/sessions/:id/encounter/monster-turn", handler.CombatMonsterTurn)
		apiGroup.POST("/sessions/:id/encounter/resolve", handler.ResolveEncounter)

		// 存档相关
		apiGroup.POST("/saves", handler.SaveGame)
		apiGroup.GET("/saves", handler.ListSaves)
		apiGroup.POST("/saves/load", handler.LoadGame)
	}

	// 启动服务器
	addr := fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)
	log.Printf("🎲 Project Delve 启动成功！访问 http://localhost:%s", config.Server.Port)
	log.Printf("⚔️  准备好火把和干粮，地城在等你...")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务器失败: %v", err)
	}
}

func loadConfig(path string) (*models.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config models.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if config.Game.InventorySlots <= 0 {
		config.Game = models.DefaultGameConfig()
	}

	return &config, nil
}
