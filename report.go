package msgformat

import (
	"context"
	"fmt"

	hcty "github.com/hashicorp/go-cty/cty"
	fwdiag "github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	sdkdiag "github.com/hashicorp/terraform-plugin-sdk/v2/diag"
)

// Report builds the message for an invalid result. It returns false for a
// valid result, which needs no message.
func Report(res Result, typ MessageType, location any, useDetail bool) (ValidationMessage, bool) {
	if res.Valid {
		return ValidationMessage{}, false
	}
	return NewMessage(typ, location, res, useDetail), true
}

// AppendFW adds a framework diagnostic for an invalid result and reports
// whether one was added. A path.Path location produces an attribute
// diagnostic.
func AppendFW(ctx context.Context, diags *fwdiag.Diagnostics, typ MessageType, location any, res Result) (added bool) {
	if res.Valid || diags == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			diags.AddError(fallbackSummary(res), res.Detail+panicSuffix(r))
			added = true
		}
	}()

	summary, detail := res.Summary, res.Detail
	p, isPath := location.(path.Path)
	switch {
	case typ == Warn && isPath:
		diags.AddAttributeWarning(p, summary, detail)
	case typ == Warn:
		diags.AddWarning(summary, detail)
	case isPath:
		diags.AddAttributeError(p, summary, detail)
	default:
		diags.AddError(summary, detail)
	}
	emitLog(ctx, NewMessage(typ, location, res, false), res)
	return true
}

// AppendSDK adds an SDKv2 diagnostic for an invalid result. A cty.Path
// location becomes the diagnostic's attribute path.
func AppendSDK(ctx context.Context, diags sdkdiag.Diagnostics, typ MessageType, location any, res Result) (out sdkdiag.Diagnostics) {
	if res.Valid {
		return diags
	}
	defer func() {
		if r := recover(); r != nil {
			out = append(diags, sdkdiag.Diagnostic{
				Severity: sdkdiag.Error,
				Summary:  fallbackSummary(res),
				Detail:   res.Detail + panicSuffix(r),
			})
		}
	}()

	d := sdkdiag.Diagnostic{
		Severity: sdkdiag.Error,
		Summary:  res.Summary,
		Detail:   res.Detail,
	}
	if typ == Warn {
		d.Severity = sdkdiag.Warning
	}
	if p, ok := location.(hcty.Path); ok {
		d.AttributePath = p
	}
	emitLog(ctx, NewMessage(typ, location, res, false), res)
	return append(diags, d)
}

// emitLog sends the message to the user-facing logger, if one is set.
func emitLog(ctx context.Context, msg ValidationMessage, res Result) {
	if globalLogger == nil {
		return
	}
	keyvals := map[string]any{
		"kind":           res.Kind.String(),
		"argument_count": res.ArgumentCount,
	}
	if msg.Location != nil {
		keyvals["location"] = fmt.Sprint(msg.Location)
	}
	switch msg.Type {
	case Warn:
		globalLogger.Warn(ctx, msg.Text, keyvals)
	default:
		globalLogger.Error(ctx, msg.Text, keyvals)
	}
}

func fallbackSummary(res Result) string {
	if res.Summary != "" {
		return res.Summary
	}
	return "msgformat error"
}

func panicSuffix(r any) string {
	msg := " [msgformat panic: "
	switch v := r.(type) {
	case error:
		msg += v.Error()
	case string:
		msg += v
	default:
		msg += "unknown panic"
	}
	return msg + "]"
}
