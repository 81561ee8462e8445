//go:build !mobile

// stub.go - 非移动端构建时的占位文件
//
// 实际的移动端代码在 mobile.go 和 embed.go 中，仅在使用 -tags mobile 时编译。
package mobile

//go:generate mkdir -p data
//go:generate cp ../data/fireworks.yaml data/fireworks.yaml

// SetScore is a no-op outside mobile builds.
func SetScore(score, maxScore float64) {}

// Save is a no-op outside mobile builds.
func Save() {}

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
