// @title 课程关卡创作后端 API
// @version 1.0
// @description 课程/关卡创作工具的后端服务，提供课程与四类关卡（图片/视频/Canvas/选择题）的增删改查和媒体上传。

// @host localhost:3000
// @BasePath /api

package main

import (
	"course_studio_backend/internal/app"
	"course_studio_backend/internal/config"
	"course_studio_backend/pkg/configwatcher"
	"course_studio_backend/pkg/logger"
	"flag"
	"log"

	"go.uber.org/zap"
)

func main() {
	// 命令行参数（仅 mysql 存储后端有迁移可做）
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	// 配置热重载：大部分字段需要重启才生效，这里只提示
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("配置文件已变更，存储/端口等设置需重启后生效",
			zap.String("storage", newCfg.Storage.Type),
			zap.String("store", newCfg.Store.Driver))
	})

	application.Run()
}
