package service

import (
	"errors"

	"hrm_records_go/pkg/database"

	"gorm.io/gorm"
)

// 哨兵错误：Handler 只依赖这些错误做状态码映射，不感知 gorm/驱动错误。
var (
	ErrInvalidInput = errors.New("invalid input")

	ErrDepartmentNotFound      = errors.New("department not found")
	ErrDepartmentAlreadyExists = errors.New("department already exists")

	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("member already exists")

	ErrDocumentNotFound      = errors.New("document not found")
	ErrDocumentAlreadyExists = errors.New("document already exists")
	// ErrAttachmentMissing 新增/替换附件时源文件不存在。
	ErrAttachmentMissing = errors.New("attachment source file not found")

	ErrWorkHistoryNotFound = errors.New("work history not found")

	ErrAwardNotFound      = errors.New("award record not found")
	ErrAwardAlreadyExists = errors.New("award record already exists")

	// ErrImportSourceMissing 导入文件不存在或无法读取，整个导入在写库前终止。
	ErrImportSourceMissing = errors.New("import source missing or unreadable")
	// ErrUnsupportedDriver 备份/恢复只支持 SQLite。
	ErrUnsupportedDriver = errors.New("operation requires the sqlite driver")

	// ErrInvalidCredentials 用户名或密码错误（登录时统一返回，防止用户枚举）
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")

	// ErrInternal 内部错误（对外不暴露细节）
	ErrInternal = errors.New("internal server error")
)

// translate 把仓储层错误转换为哨兵错误：
// 记录不存在 → notFound，唯一约束冲突 → conflict，外键失败 → ErrInvalidInput。
func translate(err, notFound, conflict error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil:
		return notFound
	case database.IsDuplicateKey(err) && conflict != nil:
		return conflict
	case database.IsForeignKeyViolation(err):
		return ErrInvalidInput
	default:
		return err
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
