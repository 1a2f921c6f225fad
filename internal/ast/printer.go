package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print returns a tree-like string representation of the AST for debugging
func Print(node Node) string {
	var sb strings.Builder
	printNode(&sb, node, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, node Node, indent int) {
	if node == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *Program:
		sb.WriteString(prefix + "Program\n")
		for _, def := range n.Defs {
			printNode(sb, def, indent+1)
		}
		if n.Main != nil {
			sb.WriteString(fmt.Sprintf("%s  Main:\n", prefix))
			printNode(sb, n.Main, indent+2)
		}

	case *FuncDef:
		kind := "Function"
		if n.IsProcedure() {
			kind = "Procedure"
		}
		sb.WriteString(fmt.Sprintf("%s%s: %s\n", prefix, kind, n.Name))

		if len(n.Params) > 0 {
			sb.WriteString(fmt.Sprintf("%s  Params:\n", prefix))
			for _, p := range n.Params {
				printNode(sb, p, indent+2)
			}
		} else {
			sb.WriteString(fmt.Sprintf("%s  Params: none\n", prefix))
		}

		if n.ReturnType != nil {
			sb.WriteString(fmt.Sprintf("%s  Returns: %s\n", prefix, n.ReturnType.Name))
		}

		if n.Body != nil {
			sb.WriteString(fmt.Sprintf("%s  Body:\n", prefix))
			printNode(sb, n.Body, indent+2)
		}

	case *Param:
		sb.WriteString(fmt.Sprintf("%s%s: %s\n", prefix, n.Name, n.Type.Name))

	case *Block:
		sb.WriteString(prefix + "Block\n")
		for _, stmt := range n.Statements {
			printNode(sb, stmt, indent+1)
		}

	case *IntroStmt:
		sb.WriteString(fmt.Sprintf("%sIntroStmt: %s: %s\n", prefix, n.Name, n.Type.Name))
		printNode(sb, n.Value, indent+1)

	case *AssignStmt:
		sb.WriteString(fmt.Sprintf("%sAssignStmt: %s\n", prefix, n.Name))
		printNode(sb, n.Value, indent+1)

	case *CompoundAssignStmt:
		sb.WriteString(fmt.Sprintf("%sCompoundAssignStmt: %s %s\n", prefix, n.Name, n.Op))
		printNode(sb, n.Value, indent+1)

	case *PassStmt:
		sb.WriteString(prefix + "PassStmt\n")

	case *PrintStmt:
		sb.WriteString(prefix + "PrintStmt\n")
		for _, arg := range n.Args {
			printNode(sb, arg, indent+1)
		}

	case *IfStmt:
		sb.WriteString(prefix + "IfStmt\n")
		for i, clause := range n.Clauses {
			label := "If"
			if i > 0 {
				label = "Elif"
			}
			sb.WriteString(fmt.Sprintf("%s  %s:\n", prefix, label))
			printNode(sb, clause.Condition, indent+2)
			printNode(sb, clause.Body, indent+2)
		}
		if n.Else != nil {
			sb.WriteString(fmt.Sprintf("%s  Else:\n", prefix))
			printNode(sb, n.Else, indent+2)
		}

	case *WhileStmt:
		sb.WriteString(prefix + "WhileStmt\n")
		sb.WriteString(fmt.Sprintf("%s  Condition:\n", prefix))
		printNode(sb, n.Condition, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Body:\n", prefix))
		printNode(sb, n.Body, indent+2)

	case *RepeatStmt:
		sb.WriteString(prefix + "RepeatStmt\n")
		sb.WriteString(fmt.Sprintf("%s  Body:\n", prefix))
		printNode(sb, n.Body, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Until:\n", prefix))
		printNode(sb, n.Condition, indent+2)

	case *ReturnStmt:
		sb.WriteString(prefix + "ReturnStmt\n")
		if n.Value != nil {
			printNode(sb, n.Value, indent+1)
		}

	case *CallStmt:
		sb.WriteString(fmt.Sprintf("%sCallStmt: %s\n", prefix, n.Name))
		printArgs(sb, prefix, n.Args, indent)

	case *BinaryExpr:
		sb.WriteString(fmt.Sprintf("%sBinaryExpr: %s\n", prefix, n.Op))
		printNode(sb, n.Left, indent+1)
		printNode(sb, n.Right, indent+1)

	case *UnaryExpr:
		sb.WriteString(fmt.Sprintf("%sUnaryExpr: %s\n", prefix, n.Op))
		printNode(sb, n.Operand, indent+1)

	case *TernaryExpr:
		sb.WriteString(prefix + "TernaryExpr\n")
		sb.WriteString(fmt.Sprintf("%s  Condition:\n", prefix))
		printNode(sb, n.Cond, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Then:\n", prefix))
		printNode(sb, n.Then, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Else:\n", prefix))
		printNode(sb, n.Else, indent+2)

	case *CallExpr:
		sb.WriteString(fmt.Sprintf("%sCallExpr: %s\n", prefix, n.Function))
		printArgs(sb, prefix, n.Args, indent)

	case *InputExpr:
		sb.WriteString(prefix + "InputExpr\n")
		printNode(sb, n.Prompt, indent+1)

	case *IntConvExpr:
		sb.WriteString(prefix + "IntConvExpr\n")
		printNode(sb, n.Expr, indent+1)

	case *StrConvExpr:
		sb.WriteString(prefix + "StrConvExpr\n")
		printNode(sb, n.Expr, indent+1)

	case *Identifier:
		sb.WriteString(fmt.Sprintf("%sIdentifier: %s\n", prefix, n.Name))

	case *IntLit:
		sb.WriteString(fmt.Sprintf("%sIntLit: %d\n", prefix, n.Value))

	case *StringLit:
		sb.WriteString(fmt.Sprintf("%sStringLit: %s\n", prefix, strconv.Quote(n.Value)))

	case *BoolLit:
		value := "False"
		if n.Value {
			value = "True"
		}
		sb.WriteString(fmt.Sprintf("%sBoolLit: %s\n", prefix, value))

	case *NoneLit:
		sb.WriteString(prefix + "NoneLit\n")

	default:
		sb.WriteString(fmt.Sprintf("%sUnknown node type: %T\n", prefix, node))
	}
}

func printArgs(sb *strings.Builder, prefix string, args []Expression, indent int) {
	if len(args) == 0 {
		sb.WriteString(fmt.Sprintf("%s  Args: none\n", prefix))
		return
	}
	sb.WriteString(fmt.Sprintf("%s  Args:\n", prefix))
	for _, arg := range args {
		printNode(sb, arg, indent+2)
	}
}
