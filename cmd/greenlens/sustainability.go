package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/greenlens/backend/internal/domain"
	"github.com/greenlens/backend/internal/infrastructure/catalog"
	"github.com/greenlens/backend/internal/infrastructure/messaging"
	"github.com/greenlens/backend/internal/usecase"
	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var displayPrinter = message.NewPrinter(language.English)

// SustainabilityCmd renders classifier, detector and popup results
type SustainabilityCmd struct {
	service *usecase.SustainabilityService
	out     io.Writer
}

// newSustainabilityCmd wires the service over the built-in catalog.
// No snapshot store: the CLI is stateless between invocations.
func newSustainabilityCmd(out io.Writer) SustainabilityCmd {
	svc := usecase.NewSustainabilityService(
		nil,
		messaging.NewNoopMessenger(),
		catalog.NewStaticCatalog(),
		usecase.SustainabilityServiceConfig{},
	)
	return SustainabilityCmd{service: svc, out: out}
}

// ClassifyInput holds input for classifying a URL.
type ClassifyInput struct {
	URL    string
	Output string
}

// Classify prints the sustainability score for a URL.
func (c SustainabilityCmd) Classify(ctx context.Context, in ClassifyInput) error {
	if err := checkOutput(in.Output); err != nil {
		return err
	}

	score, err := c.service.Classify(ctx, in.URL)
	if err != nil {
		return err
	}

	if in.Output == "json" {
		return c.printJSON(score)
	}

	rows := pterm.TableData{{"Property", "Value"}}
	rows = append(rows, []string{"URL", in.URL})
	rows = append(rows, scoreRows(score)...)
	return c.printTable(rows)
}

// DetectInput holds input for the product page check.
type DetectInput struct {
	URL    string
	Output string
}

// Detect prints whether a URL is a supported product page.
func (c SustainabilityCmd) Detect(ctx context.Context, in DetectInput) error {
	if err := checkOutput(in.Output); err != nil {
		return err
	}

	retailer, ok := c.service.Detect(ctx, in.URL)

	if in.Output == "json" {
		return c.printJSON(map[string]interface{}{
			"url":         in.URL,
			"productPage": ok,
			"retailer":    retailer,
		})
	}

	rows := pterm.TableData{{"Property", "Value"}}
	rows = append(rows, []string{"URL", in.URL})
	rows = append(rows, []string{"Product Page", strconv.FormatBool(ok)})
	if ok {
		rows = append(rows, []string{"Retailer", retailer})
	}
	return c.printTable(rows)
}

// PopupInput holds input for rendering the popup preview.
type PopupInput struct {
	URL          string
	Alternatives int
	Output       string
}

// Popup prints the popup view: score, alternatives, reward and impact.
func (c SustainabilityCmd) Popup(ctx context.Context, in PopupInput) error {
	if err := checkOutput(in.Output); err != nil {
		return err
	}
	if in.Alternatives < 0 {
		return fmt.Errorf("--alternatives must not be negative")
	}

	view, err := c.service.Popup(ctx, in.URL, in.Alternatives)
	if err != nil {
		return err
	}

	if in.Output == "json" {
		return c.printJSON(view)
	}

	fmt.Fprintln(c.out, pterm.Bold.Sprint("Sustainability Score"))
	rows := pterm.TableData{{"Property", "Value"}}
	rows = append(rows, []string{"URL", view.URL})
	rows = append(rows, scoreRows(view.Score)...)
	if err := c.printTable(rows); err != nil {
		return err
	}

	fmt.Fprintln(c.out, pterm.Bold.Sprint("Sustainable Alternatives"))
	if len(view.Alternatives) == 0 {
		fmt.Fprintln(c.out, "No alternatives available")
	} else {
		altRows := pterm.TableData{{"Name", "Brand", "Price", "Discount", "Score", "Certifications"}}
		altRows = append(altRows, lo.Map(view.Alternatives, func(alt domain.AlternativeProduct, _ int) []string {
			return []string{
				alt.Name,
				alt.Brand,
				displayPrinter.Sprintf("₹%d", alt.Price),
				fmt.Sprintf("%d%%", alt.Discount),
				fmt.Sprintf("%d/100", alt.SustainabilityScore.Score),
				strings.Join(alt.Certifications, ", "),
			}
		})...)
		if err := c.printTable(altRows); err != nil {
			return err
		}
	}

	fmt.Fprintln(c.out, pterm.Bold.Sprint("Your Impact"))
	impactRows := pterm.TableData{{"Metric", "Saved"}}
	impactRows = append(impactRows, []string{"Carbon", view.Impact.CarbonDisplay})
	impactRows = append(impactRows, []string{"Water", view.Impact.WaterDisplay})
	impactRows = append(impactRows, []string{"Plastic", view.Impact.PlasticDisplay})
	if err := c.printTable(impactRows); err != nil {
		return err
	}

	if view.Reward != nil {
		fmt.Fprintln(c.out, pterm.Bold.Sprint("Reward"))
		rewardRows := pterm.TableData{{"Property", "Value"}}
		rewardRows = append(rewardRows, []string{"Title", view.Reward.Title})
		rewardRows = append(rewardRows, []string{"Brand", view.Reward.Brand})
		rewardRows = append(rewardRows, []string{"Code", view.Reward.DiscountCode})
		rewardRows = append(rewardRows, []string{"Discount", fmt.Sprintf("%d%%", view.Reward.DiscountPercent)})
		rewardRows = append(rewardRows, []string{"Valid Until", view.Reward.ValidUntil})
		return c.printTable(rewardRows)
	}

	return nil
}

func scoreRows(score domain.SustainabilityScore) [][]string {
	return [][]string{
		{"Overall", tierStyle(score.Overall).Sprint(score.Overall.Label())},
		{"Score", fmt.Sprintf("%d/100", score.Score)},
		{"Environmental", strconv.Itoa(score.Factors.Environmental)},
		{"Social", strconv.Itoa(score.Factors.Social)},
		{"Governance", strconv.Itoa(score.Factors.Governance)},
		{"Reasoning", score.Reasoning},
	}
}

func tierStyle(tier domain.Tier) pterm.Color {
	switch tier {
	case domain.TierGreen:
		return pterm.FgGreen
	case domain.TierRed:
		return pterm.FgRed
	default:
		return pterm.FgYellow
	}
}

func checkOutput(output string) error {
	if output != "" && output != "table" && output != "json" {
		return fmt.Errorf("unsupported --output value: use 'table' or 'json'")
	}
	return nil
}

func (c SustainabilityCmd) printTable(rows pterm.TableData) error {
	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, table)
	return err
}

func (c SustainabilityCmd) printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, string(data))
	return err
}

var classifyCmd = &cobra.Command{
	Use:   "classify <url>",
	Short: "Show the sustainability score for a retailer URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		return newSustainabilityCmd(cmd.OutOrStdout()).Classify(cmd.Context(), ClassifyInput{
			URL:    args[0],
			Output: output,
		})
	},
}

var detectCmd = &cobra.Command{
	Use:   "detect <url>",
	Short: "Check whether a URL is a supported product page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		return newSustainabilityCmd(cmd.OutOrStdout()).Detect(cmd.Context(), DetectInput{
			URL:    args[0],
			Output: output,
		})
	},
}

var popupCmd = &cobra.Command{
	Use:   "popup [url]",
	Short: "Preview the extension popup for a URL",
	Long:  "Preview the extension popup for a URL. Without a URL the example Amazon product page is used.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		alternatives, _ := cmd.Flags().GetInt("alternatives")

		in := PopupInput{Alternatives: alternatives, Output: output}
		if len(args) == 1 {
			in.URL = args[0]
		}
		return newSustainabilityCmd(cmd.OutOrStdout()).Popup(cmd.Context(), in)
	},
}

func init() {
	popupCmd.Flags().IntP("alternatives", "n", 2, "Number of alternatives to show")
}
