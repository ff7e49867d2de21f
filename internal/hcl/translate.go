package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/pipecut/internal/config"
	"github.com/vk/pipecut/internal/schema"
)

// translate converts the decoded HCL schema into the agnostic config model.
func (l *Loader) translate(p *schema.Pipeline, stages []*schema.Stage) (*config.Model, error) {
	workers, err := evalWorkers(p)
	if err != nil {
		return nil, err
	}

	m := &config.Model{Name: p.Name, Output: p.Output, Workers: workers}
	for _, st := range stages {
		args, err := evalArguments(st)
		if err != nil {
			return nil, err
		}
		m.Stages = append(m.Stages, &config.StageConfig{
			Kind:      st.Kind,
			Name:      st.Name,
			Inputs:    st.Inputs,
			Arguments: args,
		})
	}
	return m, nil
}

// evalWorkers statically evaluates the pipeline's workers expression. An
// absent or null attribute yields zero, meaning "unspecified".
func evalWorkers(p *schema.Pipeline) (int, error) {
	if p.Workers == nil {
		return 0, nil
	}
	val, diags := p.Workers.Value(nil) // static evaluation, no variables
	if diags.HasErrors() {
		return 0, fmt.Errorf("failed to evaluate workers for pipeline %q: %s", p.Name, diags.Error())
	}
	if val.IsNull() {
		return 0, nil
	}
	if val.Type() != cty.Number {
		return 0, fmt.Errorf("workers for pipeline %q must be a number, got %s", p.Name, val.Type().FriendlyName())
	}
	n, _ := val.AsBigFloat().Int64()
	if n < 0 {
		return 0, fmt.Errorf("workers for pipeline %q must not be negative", p.Name)
	}
	return int(n), nil
}

// evalArguments statically evaluates a stage's free-form arguments block
// into opaque cty values.
func evalArguments(st *schema.Stage) (map[string]cty.Value, error) {
	if st.Arguments == nil {
		return nil, nil
	}
	attrs, diags := st.Arguments.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid arguments for stage %q: %s", st.Name, diags.Error())
	}

	out := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, err := evalAttribute(st.Name, name, attr)
		if err != nil {
			return nil, err
		}
		out[name] = val
	}
	return out, nil
}

func evalAttribute(stageName, attrName string, attr *hcl.Attribute) (cty.Value, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("failed to evaluate argument %q of stage %q: %s", attrName, stageName, diags.Error())
	}
	return val, nil
}
