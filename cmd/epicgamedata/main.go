package main

import (
	_ "embed"
	"os"
)

//使用go:embed嵌入appconfig.json文件
//下方注释重要,不能删除
//--config 指定文件时以文件为准,否则使用编译时嵌入的默认配置

//go:embed appconfig/appconfig.json
var appConfig []byte

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
