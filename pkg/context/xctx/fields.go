package xctx

import (
	"fmt"
	"unicode"
)

// Fields 日志上下文映射：name → value。
//
// 插入顺序不重要。一个 Fields 一经 Change 构建就不再原地修改——
// 每次变更都会产生全新的映射，旧映射原样保留以供恢复。
// 调用方拿到的 Fields 应视为只读。
type Fields map[string]any

// clone 返回浅拷贝。nil 安全：nil 输入返回空映射。
func (f Fields) clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// ValidateName 校验上下文变量名。
//
// 合法的名字是非空的标识符：由字母、数字、下划线构成，且不以数字开头。
// 与宿主语言的标识符规则保持一致（unicode 字母均可）。
// 非法时返回 ErrInvalidName（可用 errors.Is 判断），并附带原始输入。
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if unicode.IsDigit(r) && i > 0 {
			continue
		}
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// validateNames 整体校验一组名字：任意一个非法即返回错误，调用方不得产生任何修改。
func validateNames(names []string) error {
	for _, name := range names {
		if err := ValidateName(name); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldNames 整体校验映射中的所有 key。
func validateFieldNames(fields Fields) error {
	for name := range fields {
		if err := ValidateName(name); err != nil {
			return err
		}
	}
	return nil
}
