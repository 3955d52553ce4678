// Package xrotate 提供日志文件轮转功能。
//
// Rotator 接口定义轮转器的核心行为（Write/Close/Rotate），所有实现并发安全，
// 可直接作为 xlog Builder 的输出目标（SetRotation 内部使用本包）。
//
// 当前实现基于 lumberjack v2：按文件大小轮转，支持备份数量/保留天数/压缩配置。
package xrotate
