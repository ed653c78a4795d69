// hrmctl 是离线运维工具：导入导出 Excel、备份恢复、清库和重排序号。
package main

import (
	"os"

	"hrm_records_go/pkg/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Sync()
		os.Exit(1)
	}
	log.Sync()
}
