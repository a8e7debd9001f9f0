package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/folio/internal/content"
	"github.com/ziadkadry99/folio/internal/logging"
	"github.com/ziadkadry99/folio/internal/progress"
	"github.com/ziadkadry99/folio/internal/site"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the content document and the files it references",
	Long: `Loads data/content.json the way the pages do, reports inconsistencies
(projects without detail records, duplicate ids, dangling next-project links,
a selected-work section without a password) and verifies that every image it
references exists and would be served.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	origin, err := newOrigin(cfg)
	if err != nil {
		return err
	}
	doc, err := content.NewStore(origin.At(""), 0, logging.Log).Load(cmd.Context())
	if err != nil {
		return err
	}

	problems := doc.Validate()

	assets := site.NewAssets(os.DirFS(cfg.SiteDir), cfg.Assets)
	paths := doc.Assets()
	reporter := progress.NewReporter("Checking assets")
	reporter.Start(len(paths))
	for i, p := range paths {
		reporter.Update(i+1, p)
		switch {
		case !assets.Allowed(p):
			problems = append(problems, content.Problem{Message: fmt.Sprintf("asset %s is outside the served patterns", p)})
		case !assets.Exists(p):
			problems = append(problems, content.Problem{Message: fmt.Sprintf("asset %s does not exist", p)})
		}
	}
	reporter.Finish()

	out := cmd.OutOrStdout()
	for _, p := range problems {
		fmt.Fprintf(out, "  - %s\n", p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d problem(s) found", len(problems))
	}

	fmt.Fprintf(out, "Content OK: %d selected, %d personal, %d detail pages, %d assets\n",
		len(doc.SelectedWork.Projects), len(doc.PersonalWork.Projects), len(doc.ProjectDetails), len(paths))
	return nil
}
