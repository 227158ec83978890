package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"goloc/internal/languages"

	"github.com/spf13/cobra"
)

// newLanguageCmd 创建 language 子命令。
// 命令用于展示已支持的语言、对应文件后缀以及注释语法。
func newLanguageCmd(registry *languages.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "language",
		Short: "展示已支持语言、后缀与注释语法",
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "LANGUAGE\tEXTENSIONS\tCOMMENTS"); err != nil {
				return err
			}

			for _, item := range registry.Languages() {
				if _, err := fmt.Fprintf(writer, "%s\t%s\t%s\n", item.Name, strings.Join(item.Extensions, ", "), item.Syntax); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}
