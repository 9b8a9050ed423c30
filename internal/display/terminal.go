package display

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/rodaine/table"

	"github.com/dando385/esplora-cli/internal/dispatch"
	"github.com/dando385/esplora-cli/internal/esplora"
)

const rule = "══════════════════════════════════════════════════"

// hashLabels names the bare hash each operation returns.
var hashLabels = map[string]string{
	"get-tx-at-block-index": "Transaction",
	"get-tip-hash":          "Tip Hash",
	"get-block-hash":        "Block Hash",
}

// now is swapped in tests to keep relative timestamps stable.
var now = time.Now

func renderTerminal(w io.Writer, res *dispatch.Result, opts Options) error {
	switch v := res.Value.(type) {
	case *wire.MsgTx:
		writeTx(w, NewTxView(v, opts.Net))
	case *wire.BlockHeader:
		writeHeader(w, "Block Header", NewHeaderView(v))
	case *wire.MsgBlock:
		writeBlock(w, NewBlockView(v, opts.Net))
	case *wire.MsgMerkleBlock:
		writeMerkleBlock(w, NewMerkleBlockView(v))
	case *esplora.TxStatus:
		writeTxStatus(w, v)
	case *esplora.BlockStatus:
		writeBlockStatus(w, v)
	case *esplora.MerkleProof:
		writeMerkleProof(w, v)
	case *esplora.OutputStatus:
		writeOutputStatus(w, v)
	case esplora.FeeEstimates:
		writeFees(w, v)
	case []esplora.Tx:
		writeHistory(w, v)
	case []esplora.BlockSummary:
		writeBlocks(w, v)
	case dispatch.BroadcastReceipt:
		fmt.Fprintf(w, "\n%s Broadcast accepted\n", Green("✓"))
		fmt.Fprintf(w, "  %s %s\n", Bold("Txid:"), v.Txid)
	case chainhash.Hash:
		label, ok := hashLabels[res.Op]
		if !ok {
			label = "Hash"
		}
		fmt.Fprintf(w, "\n%s %s\n", Bold(label+":"), v)
	case uint32:
		fmt.Fprintf(w, "\n%s %s\n", Bold("Tip Height:"), FormatNumber(uint64(v)))
	default:
		return fmt.Errorf("no terminal renderer for %T", res.Value)
	}

	fmt.Fprintln(w)
	if opts.Provider != "" {
		fmt.Fprintf(w, "  %s %s (%s)\n\n", Bold("Provider:"), opts.Provider, ColorLatency(res.Latency.Milliseconds()))
	}
	return nil
}

func newTable(w io.Writer, columns ...interface{}) table.Table {
	return table.New(columns...).WithWriter(w).WithHeaderFormatter(headerFmt)
}

func writeTx(w io.Writer, v TxView) {
	fmt.Fprintf(w, "\n%s %s\n", Bold("Transaction"), v.Txid)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  %s    %s\n", Bold("Wtxid:"), v.Wtxid)
	fmt.Fprintf(w, "  %s  %d\n", Bold("Version:"), v.Version)
	fmt.Fprintf(w, "  %s %d\n", Bold("Locktime:"), v.Locktime)
	fmt.Fprintf(w, "  %s     %d bytes %s\n", Bold("Size:"), v.Size,
		Dim(fmt.Sprintf("(vsize %d, weight %d)", v.VSize, v.Weight)))

	fmt.Fprintf(w, "\n%s (%d)\n", Bold("Inputs"), len(v.Inputs))
	for i, in := range v.Inputs {
		if in.Coinbase {
			fmt.Fprintf(w, "  #%d %s\n", i, Cyan("coinbase"))
		} else {
			fmt.Fprintf(w, "  #%d %s:%d\n", i, in.Txid, in.Vout)
		}
		fmt.Fprintf(w, "     Sequence:  %#08x\n", in.Sequence)
		fmt.Fprintf(w, "     ScriptSig: %s\n", orDash(in.ScriptSig))
		if in.ScriptSigAsm != "" {
			fmt.Fprintf(w, "     Asm:       %s\n", in.ScriptSigAsm)
		}
		for j, item := range in.Witness {
			fmt.Fprintf(w, "     Witness%d:  %s\n", j, orDash(item))
		}
	}

	fmt.Fprintf(w, "\n%s (%d)\n", Bold("Outputs"), len(v.Outputs))
	for i, out := range v.Outputs {
		fmt.Fprintf(w, "  #%d %s %s\n", i, FormatSats(out.Value), Dim(out.Type))
		if out.Address != "" {
			fmt.Fprintf(w, "     Address: %s\n", out.Address)
		}
		fmt.Fprintf(w, "     Script:  %s\n", orDash(out.ScriptPubKey))
		if out.Asm != "" {
			fmt.Fprintf(w, "     Asm:     %s\n", out.Asm)
		}
	}
}

func writeHeader(w io.Writer, title string, h HeaderView) {
	fmt.Fprintf(w, "\n%s %s\n", Bold(title), h.Hash)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  %s     %d\n", Bold("Version:"), h.Version)
	fmt.Fprintf(w, "  %s      %s\n", Bold("Parent:"), h.PrevBlock)
	fmt.Fprintf(w, "  %s %s\n", Bold("Merkle Root:"), h.MerkleRoot)
	fmt.Fprintf(w, "  %s   %s\n", Bold("Timestamp:"), FormatTimestamp(h.Timestamp, now()))
	fmt.Fprintf(w, "  %s        %s\n", Bold("Bits:"), h.Bits)
	fmt.Fprintf(w, "  %s       %d\n", Bold("Nonce:"), h.Nonce)
}

func writeBlock(w io.Writer, b BlockView) {
	writeHeader(w, "Block", b.HeaderView)
	fmt.Fprintf(w, "  %s        %s bytes %s\n", Bold("Size:"), FormatNumber(uint64(b.Size)),
		Dim(fmt.Sprintf("(stripped %s, weight %s)", FormatNumber(uint64(b.StrippedSize)), FormatNumber(uint64(b.Weight)))))
	fmt.Fprintf(w, "  %s %d\n", Bold("Transactions:"), b.TxCount)
	fmt.Fprintln(w)

	tbl := newTable(w, "#", "Txid", "Inputs", "Outputs", "Value Out", "Weight")
	for i, tx := range b.Transactions {
		var out int64
		for _, o := range tx.Outputs {
			out += o.Value
		}
		tbl.AddRow(i, tx.Txid, len(tx.Inputs), len(tx.Outputs), FormatSats(out), tx.Weight)
	}
	tbl.Print()
}

func writeMerkleBlock(w io.Writer, mb MerkleBlockView) {
	writeHeader(w, "Merkle Block", mb.Header)
	fmt.Fprintf(w, "  %s %d\n", Bold("Transactions:"), mb.Transactions)
	fmt.Fprintf(w, "  %s        %s\n", Bold("Flags:"), orDash(mb.Flags))
	fmt.Fprintln(w)

	tbl := newTable(w, "#", "Hash")
	for i, h := range mb.Hashes {
		tbl.AddRow(i, h)
	}
	tbl.Print()
}

func writeTxStatus(w io.Writer, st *esplora.TxStatus) {
	fmt.Fprintf(w, "\n%s %s\n", Bold("Confirmed:"), ColorBool(st.Confirmed, "✓ yes", "⚠ unconfirmed"))
	if st.BlockHeight != nil {
		fmt.Fprintf(w, "  %s %s\n", Bold("Block Height:"), FormatNumber(uint64(*st.BlockHeight)))
	}
	if st.BlockHash != nil {
		fmt.Fprintf(w, "  %s   %s\n", Bold("Block Hash:"), *st.BlockHash)
	}
	if st.BlockTime != nil {
		fmt.Fprintf(w, "  %s   %s\n", Bold("Block Time:"), FormatTimestamp(*st.BlockTime, now()))
	}
}

func writeBlockStatus(w io.Writer, st *esplora.BlockStatus) {
	fmt.Fprintf(w, "\n%s %s\n", Bold("In Best Chain:"), ColorBool(st.InBestChain, "✓ yes", "✗ no"))
	if st.Height != nil {
		fmt.Fprintf(w, "  %s    %s\n", Bold("Height:"), FormatNumber(uint64(*st.Height)))
	}
	if st.NextBest != nil {
		fmt.Fprintf(w, "  %s %s\n", Bold("Next Best:"), *st.NextBest)
	}
}

func writeMerkleProof(w io.Writer, p *esplora.MerkleProof) {
	fmt.Fprintf(w, "\n%s %s\n", Bold("Block Height:"), FormatNumber(uint64(p.BlockHeight)))
	fmt.Fprintf(w, "%s     %d\n", Bold("Position:"), p.Pos)
	fmt.Fprintln(w)

	tbl := newTable(w, "Depth", "Sibling Hash")
	for i, h := range p.Merkle {
		tbl.AddRow(i, h)
	}
	tbl.Print()
}

func writeOutputStatus(w io.Writer, st *esplora.OutputStatus) {
	fmt.Fprintf(w, "\n%s %s\n", Bold("Output:"), ColorBool(!st.Spent, "✓ unspent", "spent"))
	if st.Txid != nil {
		fmt.Fprintf(w, "  %s %s\n", Bold("Spending Tx:"), *st.Txid)
	}
	if st.Vin != nil {
		fmt.Fprintf(w, "  %s  %d\n", Bold("Input Index:"), *st.Vin)
	}
	if st.Status != nil {
		writeTxStatus(w, st.Status)
	}
}

func writeFees(w io.Writer, fees esplora.FeeEstimates) {
	targets := make([]uint16, 0, len(fees))
	for t := range fees {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })

	fmt.Fprintf(w, "\n%s\n", Bold("Fee Estimates"))
	tbl := newTable(w, "Target (blocks)", "Fee Rate (sat/vB)")
	for _, t := range targets {
		tbl.AddRow(t, fmt.Sprintf("%.3f", fees[t]))
	}
	tbl.Print()
}

func writeHistory(w io.Writer, txs []esplora.Tx) {
	fmt.Fprintf(w, "\n%s (%d)\n", Bold("Transactions"), len(txs))
	if len(txs) == 0 {
		fmt.Fprintln(w, Dim("  no transactions"))
		return
	}

	for _, tx := range txs {
		height := Yellow("unconfirmed")
		if tx.Status.BlockHeight != nil {
			height = FormatNumber(uint64(*tx.Status.BlockHeight))
		}
		fmt.Fprintf(w, "\n  %s %s\n", Bold(tx.Txid), Dim("@ "+height))
		fmt.Fprintf(w, "     Version %d, locktime %d, size %d, weight %d, fee %s\n",
			tx.Version, tx.Locktime, tx.Size, tx.Weight, FormatSats(int64(tx.Fee)))
		if tx.Status.BlockHash != nil {
			fmt.Fprintf(w, "     Block: %s\n", *tx.Status.BlockHash)
		}
		if tx.Status.BlockTime != nil {
			fmt.Fprintf(w, "     Time:  %s\n", FormatTimestamp(*tx.Status.BlockTime, now()))
		}
		for i, in := range tx.Vin {
			writeHistoryInput(w, i, in)
		}
		for i, out := range tx.Vout {
			fmt.Fprintf(w, "     out #%d %s", i, describeVout(out))
			fmt.Fprintln(w)
		}
	}

	// the next page starts after the last transaction of this one
	fmt.Fprintf(w, "\n%s %s\n", Bold("Next Page Cursor:"), txs[len(txs)-1].Txid)
}

func writeHistoryInput(w io.Writer, i int, in esplora.Vin) {
	if in.IsCoinbase {
		fmt.Fprintf(w, "     in  #%d %s seq %#08x scriptsig %s\n", i, Cyan("coinbase"), in.Sequence, orDash(in.ScriptSig))
		return
	}
	fmt.Fprintf(w, "     in  #%d %s:%d seq %#08x\n", i, in.Txid, in.Vout, in.Sequence)
	if in.Prevout != nil {
		fmt.Fprintf(w, "          prevout %s\n", describeVout(*in.Prevout))
	}
	if in.ScriptSig != "" {
		fmt.Fprintf(w, "          scriptsig %s (%s)\n", in.ScriptSig, in.ScriptSigAsm)
	}
	if len(in.Witness) > 0 {
		fmt.Fprintf(w, "          witness %s\n", strings.Join(in.Witness, " "))
	}
	if in.InnerRedeemScriptAsm != "" {
		fmt.Fprintf(w, "          redeemscript %s\n", in.InnerRedeemScriptAsm)
	}
	if in.InnerWitnessScriptAsm != "" {
		fmt.Fprintf(w, "          witnessscript %s\n", in.InnerWitnessScriptAsm)
	}
}

func describeVout(out esplora.Vout) string {
	addr := out.ScriptPubKeyAddress
	if addr == "" {
		addr = out.ScriptPubKey
	}
	return fmt.Sprintf("%s %s %s [%s]", FormatSats(int64(out.Value)), out.ScriptPubKeyType, addr, out.ScriptPubKeyAsm)
}

func writeBlocks(w io.Writer, blocks []esplora.BlockSummary) {
	fmt.Fprintf(w, "\n%s\n", Bold("Recent Blocks"))
	tbl := newTable(w, "Height", "Hash", "Time", "Txs", "Size", "Weight", "Difficulty")
	for _, b := range blocks {
		tbl.AddRow(
			FormatNumber(uint64(b.Height)),
			b.ID,
			time.Unix(int64(b.Timestamp), 0).UTC().Format("2006-01-02 15:04"),
			b.TxCount,
			FormatNumber(b.Size),
			FormatNumber(b.Weight),
			fmt.Sprintf("%.0f", b.Difficulty),
		)
	}
	tbl.Print()

	fmt.Fprintln(w)
	for _, b := range blocks {
		prev := "—"
		if b.PreviousBlockHash != nil {
			prev = *b.PreviousBlockHash
		}
		fmt.Fprintf(w, "  %s %s\n", Bold("#"+FormatNumber(uint64(b.Height))), Dim(fmt.Sprintf(
			"version %#08x bits %08x nonce %d mediantime %d merkle %s parent %s",
			b.Version, b.Bits, b.Nonce, b.MedianTime, b.MerkleRoot, prev)))
	}
}
