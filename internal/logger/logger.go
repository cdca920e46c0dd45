package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
)

// L 全局应用日志器，main 启动时初始化
var L *zap.Logger = zap.NewNop()

// Init 根据环境选择日志配置（APP_ENV=dev 使用开发配置）
func Init() {
	var (
		l   *zap.Logger
		err error
	)
	if os.Getenv("APP_ENV") == "dev" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	L = l
}

// Sync 刷新缓冲日志，进程退出前调用
func Sync() {
	_ = L.Sync()
}
