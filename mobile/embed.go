//go:build mobile

// embed.go - 移动端关卡数据嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需要把 data/levels 复制到此目录：
//
//	mkdir -p mobile/data && cp -r data/levels mobile/data/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/levels
var dataFS embed.FS
